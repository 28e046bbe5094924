package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/apperr"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/repository"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// AccountService handles registration, authentication, and staff review of
// representative accounts.
type AccountService interface {
	RegisterStudent(ctx context.Context, payload dto.StudentRegisterRequest) (dto.StudentResponse, error)
	RegisterRepresentative(ctx context.Context, payload dto.RepresentativeRegisterRequest) (dto.RepresentativeResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, role models.Role, userID string, payload dto.ChangePasswordRequest) error
	GetStudent(ctx context.Context, id string) (dto.StudentResponse, error)
	GetRepresentative(ctx context.Context, id string) (dto.RepresentativeResponse, error)
	GetStaff(ctx context.Context, id string) (dto.StaffResponse, error)
	ReviewRepresentative(ctx context.Context, staffID, repID string, approve bool) (dto.RepresentativeResponse, error)
	ListRepresentativesByStatus(ctx context.Context, status models.ApprovalStatus) ([]dto.RepresentativeResponse, error)
}

type accountService struct {
	students  repository.StudentRepository
	reps      repository.RepresentativeRepository
	staff     repository.StaffRepository
	validator *validator.Validate
	logger    zerolog.Logger
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAccountService constructs the account service.
func NewAccountService(
	students repository.StudentRepository,
	reps repository.RepresentativeRepository,
	staff repository.StaffRepository,
	validate *validator.Validate,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) AccountService {
	return &accountService{
		students:  students,
		reps:      reps,
		staff:     staff,
		validator: validate,
		logger:    logger.With().Str("component", "account_service").Logger(),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *accountService) RegisterStudent(ctx context.Context, payload dto.StudentRegisterRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}
	if s.emailTaken(ctx, payload.Email) {
		return dto.StudentResponse{}, apperr.Rule("duplicate-email", "an account with this email already exists")
	}

	student := models.Student{
		ID:       uuid.NewString(),
		Name:     payload.Name,
		Password: payload.Password,
		Major:    payload.Major,
		Year:     payload.Year,
		Email:    payload.Email,
	}
	if err := s.students.Save(ctx, student); err != nil {
		return dto.StudentResponse{}, persistErr(err)
	}

	s.logger.Info().Str("student_id", student.ID).Msg("student registered")
	return dto.NewStudentResponse(student), nil
}

func (s *accountService) RegisterRepresentative(ctx context.Context, payload dto.RepresentativeRegisterRequest) (dto.RepresentativeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RepresentativeResponse{}, err
	}
	if s.emailTaken(ctx, payload.Email) {
		return dto.RepresentativeResponse{}, apperr.Rule("duplicate-email", "an account with this email already exists")
	}

	rep := models.Representative{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Password:    payload.Password,
		Email:       payload.Email,
		CompanyName: payload.CompanyName,
		Industry:    payload.Industry,
		Position:    payload.Position,
		Status:      models.ApprovalPending,
	}
	if err := s.reps.Save(ctx, rep); err != nil {
		return dto.RepresentativeResponse{}, persistErr(err)
	}

	s.logger.Info().Str("representative_id", rep.ID).Str("company", rep.CompanyName).Msg("representative registered, pending staff approval")
	return dto.NewRepresentativeResponse(rep), nil
}

func (s *accountService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	if student, err := s.students.FindByEmail(ctx, payload.Email); err == nil {
		if student.Password != payload.Password {
			return dto.LoginResponse{}, apperr.Unauthorized("invalid credentials")
		}
		return s.issueToken(student.ID, student.Name, models.RoleStudent)
	}

	if rep, err := s.reps.FindByEmail(ctx, payload.Email); err == nil {
		if rep.Password != payload.Password {
			return dto.LoginResponse{}, apperr.Unauthorized("invalid credentials")
		}
		// Representatives authenticate only once staff has approved them.
		if rep.Status != models.ApprovalApproved {
			return dto.LoginResponse{}, apperr.Unauthorized("representative account is not approved")
		}
		return s.issueToken(rep.ID, rep.Name, models.RoleRepresentative)
	}

	if staff, err := s.staff.FindByEmail(ctx, payload.Email); err == nil {
		if staff.Password != payload.Password {
			return dto.LoginResponse{}, apperr.Unauthorized("invalid credentials")
		}
		return s.issueToken(staff.ID, staff.Name, models.RoleStaff)
	}

	return dto.LoginResponse{}, apperr.Unauthorized("invalid credentials")
}

func (s *accountService) ChangePassword(ctx context.Context, role models.Role, userID string, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	switch role {
	case models.RoleStudent:
		student, err := s.students.FindByID(ctx, userID)
		if err != nil {
			return s.mapNotFound(err, "student")
		}
		if student.Password != payload.OldPassword {
			return apperr.Unauthorized("invalid credentials")
		}
		student.Password = payload.NewPassword
		return persistErr(s.students.Save(ctx, student))
	case models.RoleRepresentative:
		rep, err := s.reps.FindByID(ctx, userID)
		if err != nil {
			return s.mapNotFound(err, "representative")
		}
		if rep.Password != payload.OldPassword {
			return apperr.Unauthorized("invalid credentials")
		}
		rep.Password = payload.NewPassword
		return persistErr(s.reps.Save(ctx, rep))
	case models.RoleStaff:
		staff, err := s.staff.FindByID(ctx, userID)
		if err != nil {
			return s.mapNotFound(err, "staff")
		}
		if staff.Password != payload.OldPassword {
			return apperr.Unauthorized("invalid credentials")
		}
		staff.Password = payload.NewPassword
		return persistErr(s.staff.Save(ctx, staff))
	default:
		return apperr.InvalidInput("unknown role %q", role)
	}
}

func (s *accountService) GetStudent(ctx context.Context, id string) (dto.StudentResponse, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, s.mapNotFound(err, "student")
	}
	return dto.NewStudentResponse(student), nil
}

func (s *accountService) GetRepresentative(ctx context.Context, id string) (dto.RepresentativeResponse, error) {
	rep, err := s.reps.FindByID(ctx, id)
	if err != nil {
		return dto.RepresentativeResponse{}, s.mapNotFound(err, "representative")
	}
	return dto.NewRepresentativeResponse(rep), nil
}

func (s *accountService) GetStaff(ctx context.Context, id string) (dto.StaffResponse, error) {
	staff, err := s.staff.FindByID(ctx, id)
	if err != nil {
		return dto.StaffResponse{}, s.mapNotFound(err, "staff")
	}
	return dto.NewStaffResponse(staff), nil
}

func (s *accountService) ReviewRepresentative(ctx context.Context, staffID, repID string, approve bool) (dto.RepresentativeResponse, error) {
	if !s.staff.ExistsByID(ctx, staffID) {
		return dto.RepresentativeResponse{}, apperr.Unauthorized("staff account not found")
	}

	var rep models.Representative
	err := store.Atomic(func() error {
		var ok bool
		rep, ok = s.reps.Peek(repID)
		if !ok {
			return apperr.NotFound("representative not found")
		}
		if rep.Status != models.ApprovalPending {
			return apperr.Rule("already-decided", "representative is already %s", rep.Status)
		}

		if approve {
			rep.Status = models.ApprovalApproved
		} else {
			rep.Status = models.ApprovalRejected
		}
		s.reps.Stage(rep)
		return nil
	}, s.reps.Lockable())
	if err != nil {
		return dto.RepresentativeResponse{}, persistErr(err)
	}

	s.logger.Info().
		Str("representative_id", rep.ID).
		Str("staff_id", staffID).
		Str("status", string(rep.Status)).
		Msg("representative reviewed")
	return dto.NewRepresentativeResponse(rep), nil
}

func (s *accountService) ListRepresentativesByStatus(ctx context.Context, status models.ApprovalStatus) ([]dto.RepresentativeResponse, error) {
	reps, err := s.reps.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return dto.NewRepresentativeResponseSlice(reps), nil
}

func (s *accountService) issueToken(id, name string, role models.Role) (dto.LoginResponse, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  id,
		"name": name,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("user_id", id).Str("role", string(role)).Msg("login succeeded")
	return dto.LoginResponse{Token: token, Role: role, ID: id, Name: name}, nil
}

func (s *accountService) emailTaken(ctx context.Context, email string) bool {
	if _, err := s.students.FindByEmail(ctx, email); err == nil {
		return true
	}
	if _, err := s.reps.FindByEmail(ctx, email); err == nil {
		return true
	}
	if _, err := s.staff.FindByEmail(ctx, email); err == nil {
		return true
	}
	return false
}

func (s *accountService) mapNotFound(err error, entity string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("%s not found", entity)
	}
	return err
}
