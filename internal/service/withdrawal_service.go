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

// WithdrawalService manages withdrawal requests from submission through
// staff decision.
type WithdrawalService interface {
	Request(ctx context.Context, studentID string, payload dto.WithdrawalCreateRequest) (dto.WithdrawalResponse, error)
	UpdateReason(ctx context.Context, studentID, requestID string, payload dto.WithdrawalUpdateRequest) (dto.WithdrawalResponse, error)
	Cancel(ctx context.Context, studentID, requestID string) (dto.WithdrawalResponse, error)
	Process(ctx context.Context, staffID, requestID string, payload dto.WithdrawalProcessRequest) (dto.WithdrawalResponse, error)
	Get(ctx context.Context, id string) (dto.WithdrawalResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.WithdrawalResponse, error)
	ListPending(ctx context.Context) ([]dto.WithdrawalResponse, error)
}

type withdrawalService struct {
	withdrawals  repository.WithdrawalRepository
	applications repository.ApplicationRepository
	students     repository.StudentRepository
	internships  repository.InternshipRepository
	staff        repository.StaffRepository
	validator    *validator.Validate
	policy       *bluemonday.Policy
	logger       zerolog.Logger
	now          func() time.Time
}

// NewWithdrawalService constructs the withdrawal service.
func NewWithdrawalService(
	withdrawals repository.WithdrawalRepository,
	applications repository.ApplicationRepository,
	students repository.StudentRepository,
	internships repository.InternshipRepository,
	staff repository.StaffRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) WithdrawalService {
	return &withdrawalService{
		withdrawals:  withdrawals,
		applications: applications,
		students:     students,
		internships:  internships,
		staff:        staff,
		validator:    validate,
		policy:       newSanitizer(),
		logger:       logger.With().Str("component", "withdrawal_service").Logger(),
		now:          time.Now,
	}
}

func (s *withdrawalService) Request(ctx context.Context, studentID string, payload dto.WithdrawalCreateRequest) (dto.WithdrawalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.WithdrawalResponse{}, err
	}

	request := models.WithdrawalRequest{
		ID:            uuid.NewString(),
		ApplicationID: payload.ApplicationID,
		StudentID:     studentID,
		Reason:        sanitizeText(s.policy, payload.Reason),
		Status:        models.WithdrawalPending,
		RequestDate:   s.now(),
	}

	err := store.Atomic(func() error {
		application, ok := s.applications.Peek(payload.ApplicationID)
		if !ok {
			return apperr.NotFound("application not found")
		}
		if application.StudentID != studentID {
			return apperr.Unauthorized("application belongs to another student")
		}
		if err := withdrawable(application); err != nil {
			return err
		}
		if len(s.withdrawals.ScanPendingByApplication(payload.ApplicationID)) > 0 {
			return apperr.Rule("duplicate-pending-withdrawal", "a pending withdrawal request already exists for this application")
		}
		s.withdrawals.Stage(request)
		return nil
	}, s.applications.Lockable(), s.withdrawals.Lockable())
	if err != nil {
		return dto.WithdrawalResponse{}, persistErr(err)
	}

	s.logger.Info().
		Str("request_id", request.ID).
		Str("application_id", payload.ApplicationID).
		Str("student_id", studentID).
		Msg("withdrawal requested")
	return dto.NewWithdrawalResponse(request), nil
}

func (s *withdrawalService) UpdateReason(ctx context.Context, studentID, requestID string, payload dto.WithdrawalUpdateRequest) (dto.WithdrawalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.WithdrawalResponse{}, err
	}

	var request models.WithdrawalRequest
	err := store.Atomic(func() error {
		var ok bool
		request, ok = s.withdrawals.Peek(requestID)
		if !ok {
			return apperr.NotFound("withdrawal request not found")
		}
		if request.StudentID != studentID {
			return apperr.Unauthorized("withdrawal request belongs to another student")
		}
		if request.Status != models.WithdrawalPending {
			return apperr.Rule("already-decided", "withdrawal request is already %s", request.Status)
		}

		request.Reason = sanitizeText(s.policy, payload.Reason)
		s.withdrawals.Stage(request)
		return nil
	}, s.withdrawals.Lockable())
	if err != nil {
		return dto.WithdrawalResponse{}, persistErr(err)
	}
	return dto.NewWithdrawalResponse(request), nil
}

func (s *withdrawalService) Cancel(ctx context.Context, studentID, requestID string) (dto.WithdrawalResponse, error) {
	var request models.WithdrawalRequest
	err := store.Atomic(func() error {
		var ok bool
		request, ok = s.withdrawals.Peek(requestID)
		if !ok {
			return apperr.NotFound("withdrawal request not found")
		}
		if request.StudentID != studentID {
			return apperr.Unauthorized("withdrawal request belongs to another student")
		}
		if request.Status != models.WithdrawalPending {
			return apperr.Rule("already-decided", "withdrawal request is already %s", request.Status)
		}

		request.Status = models.WithdrawalCancelled
		request.ProcessedDate = s.now()
		s.withdrawals.Stage(request)
		return nil
	}, s.withdrawals.Lockable())
	if err != nil {
		return dto.WithdrawalResponse{}, persistErr(err)
	}

	s.logger.Info().Str("request_id", request.ID).Str("student_id", studentID).Msg("withdrawal cancelled")
	return dto.NewWithdrawalResponse(request), nil
}

// Process records the staff decision. Approving withdraws the application;
// if the application had an accepted placement, the internship slot is
// released and the student's placement is cleared in the same unit of work.
// Rejecting leaves the application untouched.
func (s *withdrawalService) Process(ctx context.Context, staffID, requestID string, payload dto.WithdrawalProcessRequest) (dto.WithdrawalResponse, error) {
	if !s.staff.ExistsByID(ctx, staffID) {
		return dto.WithdrawalResponse{}, apperr.Unauthorized("staff account not found")
	}

	var processed models.WithdrawalRequest

	err := store.Atomic(func() error {
		request, found := s.withdrawals.Peek(requestID)
		if !found {
			return apperr.NotFound("withdrawal request not found")
		}
		if request.Status != models.WithdrawalPending {
			return apperr.Rule("already-decided", "withdrawal request is already %s", request.Status)
		}

		now := s.now()
		request.ProcessedDate = now
		request.StaffComments = sanitizeText(s.policy, payload.Comments)

		if !payload.Approve {
			request.Status = models.WithdrawalRejected
			s.withdrawals.Stage(request)
			processed = request
			return nil
		}

		request.Status = models.WithdrawalApproved

		application, found := s.applications.Peek(request.ApplicationID)
		if !found {
			return apperr.NotFound("application not found")
		}
		// The application may have been decided since the request was filed.
		if err := withdrawable(application); err != nil {
			return err
		}
		wasAccepted := application.Status == models.ApplicationAccepted
		application.Transition(models.ApplicationWithdrawn, now)
		application.PlacementAccepted = false
		s.applications.Stage(application)

		if wasAccepted {
			if internship, found := s.internships.Peek(application.InternshipID); found {
				internship.ReleaseSlot()
				s.internships.Stage(internship)
			}
			if student, found := s.students.Peek(request.StudentID); found {
				student.ClearPlacement()
				s.students.Stage(student)
			}
		}

		s.withdrawals.Stage(request)
		processed = request
		return nil
	}, s.students.Lockable(), s.internships.Lockable(), s.applications.Lockable(), s.withdrawals.Lockable())
	if err != nil {
		return dto.WithdrawalResponse{}, persistErr(err)
	}

	s.logger.Info().
		Str("request_id", processed.ID).
		Str("staff_id", staffID).
		Str("status", string(processed.Status)).
		Msg("withdrawal processed")
	return dto.NewWithdrawalResponse(processed), nil
}

func (s *withdrawalService) Get(ctx context.Context, id string) (dto.WithdrawalResponse, error) {
	request, err := s.withdrawals.FindByID(ctx, id)
	if err != nil {
		return dto.WithdrawalResponse{}, s.mapNotFound(err, "withdrawal request")
	}
	return dto.NewWithdrawalResponse(request), nil
}

func (s *withdrawalService) ListByStudent(ctx context.Context, studentID string) ([]dto.WithdrawalResponse, error) {
	requests, err := s.withdrawals.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewWithdrawalResponseSlice(requests), nil
}

func (s *withdrawalService) ListPending(ctx context.Context) ([]dto.WithdrawalResponse, error) {
	requests, err := s.withdrawals.FindByStatus(ctx, models.WithdrawalPending)
	if err != nil {
		return nil, err
	}
	return dto.NewWithdrawalResponseSlice(requests), nil
}

// withdrawable rejects applications already in a terminal non-placement state.
func withdrawable(application models.Application) error {
	switch application.Status {
	case models.ApplicationPending, models.ApplicationSuccessful, models.ApplicationAccepted:
		return nil
	default:
		return apperr.Rule("not-withdrawable", "a %s application cannot be withdrawn", application.Status)
	}
}

func (s *withdrawalService) mapNotFound(err error, entity string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("%s not found", entity)
	}
	return err
}
