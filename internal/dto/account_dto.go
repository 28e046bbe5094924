package dto

import (
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
)

// StudentRegisterRequest creates a student account.
type StudentRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Major    string `json:"major" validate:"required"`
	Year     int    `json:"year" validate:"required,min=1,max=4"`
}

// RepresentativeRegisterRequest creates a company representative account,
// pending staff approval.
type RepresentativeRegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	CompanyName string `json:"company_name" validate:"required"`
	Industry    string `json:"industry" validate:"required"`
	Position    string `json:"position" validate:"required"`
}

// LoginRequest authenticates any account by email.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token and the account summary.
type LoginResponse struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
	ID    string      `json:"id"`
	Name  string      `json:"name"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// StudentResponse is the outward view of a student account.
type StudentResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	Major                string   `json:"major"`
	Year                 int      `json:"year"`
	ApplicationIDs       []string `json:"application_ids"`
	AcceptedPlacementID  string   `json:"accepted_placement_id,omitempty"`
	HasAcceptedPlacement bool     `json:"has_accepted_placement"`
}

// NewStudentResponse converts a student model.
func NewStudentResponse(s models.Student) StudentResponse {
	return StudentResponse{
		ID:                   s.ID,
		Name:                 s.Name,
		Email:                s.Email,
		Major:                s.Major,
		Year:                 s.Year,
		ApplicationIDs:       s.ApplicationIDs,
		AcceptedPlacementID:  s.AcceptedPlacementID,
		HasAcceptedPlacement: s.HasAcceptedPlacement,
	}
}

// RepresentativeResponse is the outward view of a representative account.
type RepresentativeResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	CompanyName   string                `json:"company_name"`
	Industry      string                `json:"industry"`
	Position      string                `json:"position"`
	Status        models.ApprovalStatus `json:"status"`
	InternshipIDs []string              `json:"internship_ids"`
}

// NewRepresentativeResponse converts a representative model.
func NewRepresentativeResponse(r models.Representative) RepresentativeResponse {
	return RepresentativeResponse{
		ID:            r.ID,
		Name:          r.Name,
		Email:         r.Email,
		CompanyName:   r.CompanyName,
		Industry:      r.Industry,
		Position:      r.Position,
		Status:        r.Status,
		InternshipIDs: r.InternshipIDs,
	}
}

// StaffResponse is the outward view of a staff account.
type StaffResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// NewStaffResponse converts a staff model.
func NewStaffResponse(s models.Staff) StaffResponse {
	return StaffResponse{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Department: s.Department,
	}
}

// NewRepresentativeResponseSlice converts a slice of representative models.
func NewRepresentativeResponseSlice(reps []models.Representative) []RepresentativeResponse {
	responses := make([]RepresentativeResponse, 0, len(reps))
	for _, rep := range reps {
		responses = append(responses, NewRepresentativeResponse(rep))
	}
	return responses
}
