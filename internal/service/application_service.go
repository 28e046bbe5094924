package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/apperr"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/repository"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// ApplicationService exposes the application lifecycle: apply, representative
// review, and placement acceptance.
type ApplicationService interface {
	Apply(ctx context.Context, studentID string, payload dto.ApplyRequest) (dto.ApplicationResponse, error)
	Review(ctx context.Context, repID, applicationID string, payload dto.ReviewRequest) (dto.ApplicationResponse, error)
	AcceptPlacement(ctx context.Context, studentID, applicationID string) (dto.ApplicationResponse, error)
	Get(ctx context.Context, id string) (dto.ApplicationResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.ApplicationResponse, error)
	ListForInternship(ctx context.Context, repID, internshipID string) ([]dto.ApplicationResponse, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
	students     repository.StudentRepository
	internships  repository.InternshipRepository
	withdrawals  repository.WithdrawalRepository
	policy       *bluemonday.Policy
	logger       zerolog.Logger
	now          func() time.Time
}

// NewApplicationService constructs the application service.
func NewApplicationService(
	applications repository.ApplicationRepository,
	students repository.StudentRepository,
	internships repository.InternshipRepository,
	withdrawals repository.WithdrawalRepository,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationService{
		applications: applications,
		students:     students,
		internships:  internships,
		withdrawals:  withdrawals,
		policy:       newSanitizer(),
		logger:       logger.With().Str("component", "application_service").Logger(),
		now:          time.Now,
	}
}

func (s *applicationService) Apply(ctx context.Context, studentID string, payload dto.ApplyRequest) (dto.ApplicationResponse, error) {
	if payload.InternshipID == "" {
		return dto.ApplicationResponse{}, apperr.InvalidInput("internship_id is required")
	}

	now := s.now()
	application := models.Application{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		InternshipID:   payload.InternshipID,
		Status:         models.ApplicationPending,
		SubmissionDate: now,
	}

	err := store.Atomic(func() error {
		student, ok := s.students.Peek(studentID)
		if !ok {
			return apperr.NotFound("student not found")
		}
		internship, ok := s.internships.Peek(payload.InternshipID)
		if !ok {
			return apperr.NotFound("internship not found")
		}

		if student.HasAcceptedPlacement {
			return apperr.Rule("placement-already-accepted", "student has already accepted a placement")
		}

		active := s.applications.ScanActiveByStudent(studentID)
		if len(active) >= models.MaxActiveApplications {
			return apperr.Rule("max-active-applications", "student already has %d active applications", models.MaxActiveApplications)
		}
		for _, existing := range active {
			if existing.InternshipID == payload.InternshipID {
				return apperr.Rule("duplicate-application", "student has already applied to this internship")
			}
		}

		if !internship.AcceptingApplications(now) {
			return apperr.Rule("not-accepting", "internship is not currently accepting applications")
		}
		if !internship.OpenToYear(student.Year) {
			return apperr.Rule("ineligible-level", "%s internships require year 3 or above", internship.Level)
		}
		if !internship.OpenToMajor(student.Major) {
			return apperr.Rule("ineligible-major", "internship prefers %s majors", internship.PreferredMajor)
		}

		student.AddApplicationID(application.ID)
		s.students.Stage(student)
		s.applications.Stage(application)
		return nil
	}, s.students.Lockable(), s.internships.Lockable(), s.applications.Lockable())
	if err != nil {
		return dto.ApplicationResponse{}, persistErr(err)
	}

	s.logger.Info().
		Str("application_id", application.ID).
		Str("student_id", studentID).
		Str("internship_id", payload.InternshipID).
		Msg("application submitted")
	return dto.NewApplicationResponse(application), nil
}

// Review decides a pending application. The decided-state guard and the
// transition run under the same lock scope so two racing reviews cannot both
// pass the guard and overwrite each other.
func (s *applicationService) Review(ctx context.Context, repID, applicationID string, payload dto.ReviewRequest) (dto.ApplicationResponse, error) {
	var application models.Application

	err := store.Atomic(func() error {
		var ok bool
		application, ok = s.applications.Peek(applicationID)
		if !ok {
			return apperr.NotFound("application not found")
		}
		internship, ok := s.internships.Peek(application.InternshipID)
		if !ok {
			return apperr.NotFound("internship not found")
		}
		if internship.RepresentativeID != repID {
			return apperr.Unauthorized("application belongs to another representative's internship")
		}
		if application.Status != models.ApplicationPending {
			return apperr.Rule("already-decided", "application is already %s", application.Status)
		}

		if payload.Approve {
			application.Transition(models.ApplicationSuccessful, s.now())
		} else {
			application.Transition(models.ApplicationUnsuccessful, s.now())
		}
		application.Comments = sanitizeText(s.policy, payload.Comments)
		s.applications.Stage(application)
		return nil
	}, s.internships.Lockable(), s.applications.Lockable())
	if err != nil {
		return dto.ApplicationResponse{}, persistErr(err)
	}

	s.logger.Info().
		Str("application_id", application.ID).
		Str("representative_id", repID).
		Str("status", string(application.Status)).
		Msg("application reviewed")
	return dto.NewApplicationResponse(application), nil
}

// AcceptPlacement commits the student to one internship: the chosen
// application becomes ACCEPTED, every other active application is withdrawn,
// and the internship consumes a slot, flipping to FILLED at capacity. All of
// it happens under the same lock scope as one logical unit.
func (s *applicationService) AcceptPlacement(ctx context.Context, studentID, applicationID string) (dto.ApplicationResponse, error) {
	var accepted models.Application

	err := store.Atomic(func() error {
		application, ok := s.applications.Peek(applicationID)
		if !ok {
			return apperr.NotFound("application not found")
		}
		if application.StudentID != studentID {
			return apperr.Unauthorized("application belongs to another student")
		}
		if application.Status != models.ApplicationSuccessful {
			return apperr.Rule("invalid-status-transition", "only successful applications can be accepted, this one is %s", application.Status)
		}

		student, ok := s.students.Peek(studentID)
		if !ok {
			return apperr.NotFound("student not found")
		}
		if student.HasAcceptedPlacement {
			return apperr.Rule("placement-already-accepted", "student has already accepted a placement")
		}

		if len(s.withdrawals.ScanPendingByApplication(applicationID)) > 0 {
			return apperr.Rule("pending-withdrawal-exists", "a pending withdrawal request exists for this application")
		}

		internship, ok := s.internships.Peek(application.InternshipID)
		if !ok {
			return apperr.NotFound("internship not found")
		}
		if internship.FilledSlots >= internship.TotalSlots {
			return apperr.Rule("no-slots-available", "internship has no remaining slots")
		}

		now := s.now()
		application.Transition(models.ApplicationAccepted, now)
		application.PlacementAccepted = true
		application.PlacementAcceptedDate = now
		s.applications.Stage(application)

		for _, other := range s.applications.ScanActiveByStudent(studentID) {
			if other.ID == application.ID {
				continue
			}
			other.Transition(models.ApplicationWithdrawn, now)
			s.applications.Stage(other)
		}

		student.HasAcceptedPlacement = true
		student.AcceptedPlacementID = application.ID
		s.students.Stage(student)

		internship.FillSlot()
		s.internships.Stage(internship)

		accepted = application
		return nil
	}, s.students.Lockable(), s.internships.Lockable(), s.applications.Lockable(), s.withdrawals.Lockable())
	if err != nil {
		return dto.ApplicationResponse{}, persistErr(err)
	}

	s.logger.Info().
		Str("application_id", accepted.ID).
		Str("student_id", studentID).
		Str("internship_id", accepted.InternshipID).
		Msg("placement accepted")
	return dto.NewApplicationResponse(accepted), nil
}

func (s *applicationService) Get(ctx context.Context, id string) (dto.ApplicationResponse, error) {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return dto.ApplicationResponse{}, s.mapNotFound(err)
	}
	return dto.NewApplicationResponse(application), nil
}

func (s *applicationService) ListByStudent(ctx context.Context, studentID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applications.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewApplicationResponseSlice(applications), nil
}

func (s *applicationService) ListForInternship(ctx context.Context, repID, internshipID string) ([]dto.ApplicationResponse, error) {
	internship, err := s.internships.FindByID(ctx, internshipID)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if internship.RepresentativeID != repID {
		return nil, apperr.Unauthorized("internship belongs to another representative")
	}

	applications, err := s.applications.FindByInternship(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	return dto.NewApplicationResponseSlice(applications), nil
}

func (s *applicationService) mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("application or internship not found")
	}
	return err
}
