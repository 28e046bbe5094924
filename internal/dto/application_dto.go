package dto

import (
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// ApplyRequest submits a new application to an internship.
type ApplyRequest struct {
	InternshipID string `json:"internship_id" validate:"required"`
}

// ReviewRequest decides a pending application.
type ReviewRequest struct {
	Approve  bool   `json:"approve"`
	Comments string `json:"comments"`
}

// ApplicationResponse is the outward view of an application.
type ApplicationResponse struct {
	ID                    string                   `json:"id"`
	StudentID             string                   `json:"student_id"`
	InternshipID          string                   `json:"internship_id"`
	Status                models.ApplicationStatus `json:"status"`
	SubmissionDate        string                   `json:"submission_date"`
	StatusUpdateDate      string                   `json:"status_update_date,omitempty"`
	PlacementAccepted     bool                     `json:"placement_accepted"`
	PlacementAcceptedDate string                   `json:"placement_accepted_date,omitempty"`
	Comments              string                   `json:"comments,omitempty"`
}

// NewApplicationResponse converts an application model.
func NewApplicationResponse(a models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                    a.ID,
		StudentID:             a.StudentID,
		InternshipID:          a.InternshipID,
		Status:                a.Status,
		SubmissionDate:        store.FormatTime(a.SubmissionDate, models.DateTimeLayout),
		StatusUpdateDate:      store.FormatTime(a.StatusUpdateDate, models.DateTimeLayout),
		PlacementAccepted:     a.PlacementAccepted,
		PlacementAcceptedDate: store.FormatTime(a.PlacementAcceptedDate, models.DateTimeLayout),
		Comments:              a.Comments,
	}
}

// NewApplicationResponseSlice converts a slice of application models.
func NewApplicationResponseSlice(apps []models.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, NewApplicationResponse(app))
	}
	return responses
}
