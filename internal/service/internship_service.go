package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/apperr"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/repository"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// InternshipService exposes internship posting, review, and browsing.
type InternshipService interface {
	Create(ctx context.Context, repID string, payload dto.InternshipCreateRequest) (dto.InternshipResponse, error)
	Update(ctx context.Context, repID, internshipID string, payload dto.InternshipUpdateRequest) (dto.InternshipResponse, error)
	Delete(ctx context.Context, repID, internshipID string) error
	SetVisibility(ctx context.Context, repID, internshipID string, visible bool) (dto.InternshipResponse, error)
	Review(ctx context.Context, staffID, internshipID string, approve bool) (dto.InternshipResponse, error)
	Get(ctx context.Context, id string) (dto.InternshipResponse, error)
	ListByRepresentative(ctx context.Context, repID string) ([]dto.InternshipResponse, error)
	ListByStatus(ctx context.Context, status models.InternshipStatus) ([]dto.InternshipResponse, error)
	// ListOpenFor returns the opportunities the student may apply to right
	// now, filtered by approval, visibility, date window, level, and major.
	ListOpenFor(ctx context.Context, studentID string) ([]dto.InternshipResponse, error)
}

type internshipService struct {
	internships repository.InternshipRepository
	reps        repository.RepresentativeRepository
	students    repository.StudentRepository
	staff       repository.StaffRepository
	validator   *validator.Validate
	policy      *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewInternshipService constructs the internship service.
func NewInternshipService(
	internships repository.InternshipRepository,
	reps repository.RepresentativeRepository,
	students repository.StudentRepository,
	staff repository.StaffRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) InternshipService {
	return &internshipService{
		internships: internships,
		reps:        reps,
		students:    students,
		staff:       staff,
		validator:   validate,
		policy:      newSanitizer(),
		logger:      logger.With().Str("component", "internship_service").Logger(),
		now:         time.Now,
	}
}

func (s *internshipService) Create(ctx context.Context, repID string, payload dto.InternshipCreateRequest) (dto.InternshipResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InternshipResponse{}, err
	}

	level, ok := models.ParseInternshipLevel(payload.Level)
	if !ok {
		return dto.InternshipResponse{}, apperr.InvalidInput("unknown level %q", payload.Level)
	}
	dates, err := parseDateRange(payload.OpeningDate, payload.ClosingDate, payload.StartDate, payload.EndDate)
	if err != nil {
		return dto.InternshipResponse{}, err
	}

	preferredMajor := sanitizeText(s.policy, payload.PreferredMajor)
	if preferredMajor == "" {
		preferredMajor = models.PreferredMajorAny
	}

	internship := models.Internship{
		ID:               uuid.NewString(),
		Title:            sanitizeText(s.policy, payload.Title),
		Description:      sanitizeText(s.policy, payload.Description),
		Level:            level,
		PreferredMajor:   preferredMajor,
		OpeningDate:      dates.opening,
		ClosingDate:      dates.closing,
		StartDate:        dates.start,
		EndDate:          dates.end,
		TotalSlots:       payload.TotalSlots,
		Status:           models.InternshipPending,
		RepresentativeID: repID,
		Visible:          true,
	}

	err = store.Atomic(func() error {
		rep, ok := s.reps.Peek(repID)
		if !ok {
			return apperr.NotFound("representative not found")
		}
		if rep.Status != models.ApprovalApproved {
			return apperr.Rule("representative-not-approved", "only approved representatives may post internships")
		}
		if len(rep.InternshipIDs) >= models.MaxOwnedInternships {
			return apperr.Rule("max-internships", "representative already owns %d internships", models.MaxOwnedInternships)
		}

		rep.AddInternshipID(internship.ID)
		s.reps.Stage(rep)
		s.internships.Stage(internship)
		return nil
	}, s.reps.Lockable(), s.internships.Lockable())
	if err != nil {
		return dto.InternshipResponse{}, persistErr(err)
	}

	s.logger.Info().Str("internship_id", internship.ID).Str("representative_id", repID).Msg("internship created")
	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) Update(ctx context.Context, repID, internshipID string, payload dto.InternshipUpdateRequest) (dto.InternshipResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InternshipResponse{}, err
	}

	var internship models.Internship
	err := store.Atomic(func() error {
		var ok bool
		internship, ok = s.internships.Peek(internshipID)
		if !ok {
			return apperr.NotFound("internship not found")
		}
		if internship.RepresentativeID != repID {
			return apperr.Unauthorized("internship belongs to another representative")
		}
		if !internship.Editable() {
			return apperr.Rule("not-editable", "internship is %s and can no longer be edited", internship.Status)
		}

		if payload.Title != nil {
			internship.Title = sanitizeText(s.policy, *payload.Title)
		}
		if payload.Description != nil {
			internship.Description = sanitizeText(s.policy, *payload.Description)
		}
		if payload.Level != nil {
			level, ok := models.ParseInternshipLevel(*payload.Level)
			if !ok {
				return apperr.InvalidInput("unknown level %q", *payload.Level)
			}
			internship.Level = level
		}
		if payload.PreferredMajor != nil {
			major := sanitizeText(s.policy, *payload.PreferredMajor)
			if major == "" {
				major = models.PreferredMajorAny
			}
			internship.PreferredMajor = major
		}
		if payload.TotalSlots != nil {
			internship.TotalSlots = *payload.TotalSlots
		}

		opening, err := patchDate("opening", payload.OpeningDate, internship.OpeningDate)
		if err != nil {
			return err
		}
		closing, err := patchDate("closing", payload.ClosingDate, internship.ClosingDate)
		if err != nil {
			return err
		}
		start, err := patchDate("start", payload.StartDate, internship.StartDate)
		if err != nil {
			return err
		}
		end, err := patchDate("end", payload.EndDate, internship.EndDate)
		if err != nil {
			return err
		}
		dates, err := validateDateRange(opening, closing, start, end)
		if err != nil {
			return err
		}
		internship.OpeningDate = dates.opening
		internship.ClosingDate = dates.closing
		internship.StartDate = dates.start
		internship.EndDate = dates.end

		// Edits to a rejected posting resubmit it for review.
		if internship.Status == models.InternshipRejected {
			internship.Status = models.InternshipPending
		}
		s.internships.Stage(internship)
		return nil
	}, s.internships.Lockable())
	if err != nil {
		return dto.InternshipResponse{}, persistErr(err)
	}

	s.logger.Info().Str("internship_id", internship.ID).Msg("internship updated")
	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) Delete(ctx context.Context, repID, internshipID string) error {
	err := store.Atomic(func() error {
		internship, ok := s.internships.Peek(internshipID)
		if !ok {
			return apperr.NotFound("internship not found")
		}
		if internship.RepresentativeID != repID {
			return apperr.Unauthorized("internship belongs to another representative")
		}
		if !internship.Deletable(s.now()) {
			return apperr.Rule("not-deletable", "internship is %s and still within its application window", internship.Status)
		}

		if rep, ok := s.reps.Peek(repID); ok {
			rep.RemoveInternshipID(internshipID)
			s.reps.Stage(rep)
		}
		s.internships.StageDelete(internshipID)
		return nil
	}, s.reps.Lockable(), s.internships.Lockable())
	if err != nil {
		return persistErr(err)
	}

	s.logger.Info().Str("internship_id", internshipID).Str("representative_id", repID).Msg("internship deleted")
	return nil
}

func (s *internshipService) SetVisibility(ctx context.Context, repID, internshipID string, visible bool) (dto.InternshipResponse, error) {
	var internship models.Internship
	err := store.Atomic(func() error {
		var ok bool
		internship, ok = s.internships.Peek(internshipID)
		if !ok {
			return apperr.NotFound("internship not found")
		}
		if internship.RepresentativeID != repID {
			return apperr.Unauthorized("internship belongs to another representative")
		}

		internship.Visible = visible
		s.internships.Stage(internship)
		return nil
	}, s.internships.Lockable())
	if err != nil {
		return dto.InternshipResponse{}, persistErr(err)
	}

	s.logger.Info().Str("internship_id", internship.ID).Bool("visible", visible).Msg("internship visibility changed")
	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) Review(ctx context.Context, staffID, internshipID string, approve bool) (dto.InternshipResponse, error) {
	if !s.staff.ExistsByID(ctx, staffID) {
		return dto.InternshipResponse{}, apperr.Unauthorized("staff account not found")
	}

	var internship models.Internship
	err := store.Atomic(func() error {
		var ok bool
		internship, ok = s.internships.Peek(internshipID)
		if !ok {
			return apperr.NotFound("internship not found")
		}
		if internship.Status != models.InternshipPending {
			return apperr.Rule("already-decided", "internship is already %s", internship.Status)
		}

		if approve {
			internship.Status = models.InternshipApproved
		} else {
			internship.Status = models.InternshipRejected
		}
		s.internships.Stage(internship)
		return nil
	}, s.internships.Lockable())
	if err != nil {
		return dto.InternshipResponse{}, persistErr(err)
	}

	s.logger.Info().
		Str("internship_id", internship.ID).
		Str("staff_id", staffID).
		Str("status", string(internship.Status)).
		Msg("internship reviewed")
	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) Get(ctx context.Context, id string) (dto.InternshipResponse, error) {
	internship, err := s.internships.FindByID(ctx, id)
	if err != nil {
		return dto.InternshipResponse{}, s.mapNotFound(err)
	}
	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) ListByRepresentative(ctx context.Context, repID string) ([]dto.InternshipResponse, error) {
	internships, err := s.internships.FindByRepresentative(ctx, repID)
	if err != nil {
		return nil, err
	}
	return dto.NewInternshipResponseSlice(internships), nil
}

func (s *internshipService) ListByStatus(ctx context.Context, status models.InternshipStatus) ([]dto.InternshipResponse, error) {
	internships, err := s.internships.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return dto.NewInternshipResponseSlice(internships), nil
}

func (s *internshipService) ListOpenFor(ctx context.Context, studentID string) ([]dto.InternshipResponse, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("student not found")
		}
		return nil, err
	}

	accepting, err := s.internships.FindAccepting(ctx, s.now())
	if err != nil {
		return nil, err
	}

	eligible := make([]models.Internship, 0, len(accepting))
	for _, internship := range accepting {
		if internship.OpenToYear(student.Year) && internship.OpenToMajor(student.Major) {
			eligible = append(eligible, internship)
		}
	}
	return dto.NewInternshipResponseSlice(eligible), nil
}

func (s *internshipService) mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("internship not found")
	}
	return err
}

type dateRange struct {
	opening, closing, start, end time.Time
}

func parseDateRange(opening, closing, start, end string) (dateRange, error) {
	parse := func(name, value string) (time.Time, error) {
		parsed, err := time.Parse(models.DateLayout, value)
		if err != nil {
			return time.Time{}, apperr.InvalidInput("invalid %s date %q, expected yyyy-MM-dd", name, value)
		}
		return parsed, nil
	}

	var r dateRange
	var err error
	if r.opening, err = parse("opening", opening); err != nil {
		return dateRange{}, err
	}
	if r.closing, err = parse("closing", closing); err != nil {
		return dateRange{}, err
	}
	if r.start, err = parse("start", start); err != nil {
		return dateRange{}, err
	}
	if r.end, err = parse("end", end); err != nil {
		return dateRange{}, err
	}
	return validateDateRange(r.opening, r.closing, r.start, r.end)
}

// validateDateRange enforces opening < closing <= start < end.
func validateDateRange(opening, closing, start, end time.Time) (dateRange, error) {
	if !opening.Before(closing) || start.Before(closing) || !start.Before(end) {
		return dateRange{}, apperr.Rule("invalid-date-order", "dates must satisfy opening < closing <= start < end")
	}
	return dateRange{opening: opening, closing: closing, start: start, end: end}, nil
}

func patchDate(name string, value *string, current time.Time) (time.Time, error) {
	if value == nil {
		return current, nil
	}
	parsed, err := time.Parse(models.DateLayout, *value)
	if err != nil {
		return time.Time{}, apperr.InvalidInput("invalid %s date %q, expected yyyy-MM-dd", name, *value)
	}
	return parsed, nil
}
