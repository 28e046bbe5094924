package dto

import (
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// InternshipCreateRequest posts a new opportunity. Dates use yyyy-MM-dd.
type InternshipCreateRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description" validate:"required"`
	Level          string `json:"level" validate:"required"`
	PreferredMajor string `json:"preferred_major"`
	OpeningDate    string `json:"opening_date" validate:"required"`
	ClosingDate    string `json:"closing_date" validate:"required"`
	StartDate      string `json:"start_date" validate:"required"`
	EndDate        string `json:"end_date" validate:"required"`
	TotalSlots     int    `json:"total_slots" validate:"required,min=1,max=10"`
}

// InternshipUpdateRequest edits a pending or rejected opportunity; nil fields
// stay unchanged.
type InternshipUpdateRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Level          *string `json:"level"`
	PreferredMajor *string `json:"preferred_major"`
	OpeningDate    *string `json:"opening_date"`
	ClosingDate    *string `json:"closing_date"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	TotalSlots     *int    `json:"total_slots" validate:"omitempty,min=1,max=10"`
}

// VisibilityRequest toggles whether an approved opportunity is listed.
type VisibilityRequest struct {
	Visible bool `json:"visible"`
}

// InternshipResponse is the outward view of an opportunity.
type InternshipResponse struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	Level            models.InternshipLevel  `json:"level"`
	PreferredMajor   string                  `json:"preferred_major"`
	OpeningDate      string                  `json:"opening_date"`
	ClosingDate      string                  `json:"closing_date"`
	StartDate        string                  `json:"start_date"`
	EndDate          string                  `json:"end_date"`
	TotalSlots       int                     `json:"total_slots"`
	FilledSlots      int                     `json:"filled_slots"`
	Status           models.InternshipStatus `json:"status"`
	RepresentativeID string                  `json:"representative_id"`
	Visible          bool                    `json:"visible"`
}

// NewInternshipResponse converts an internship model.
func NewInternshipResponse(i models.Internship) InternshipResponse {
	return InternshipResponse{
		ID:               i.ID,
		Title:            i.Title,
		Description:      i.Description,
		Level:            i.Level,
		PreferredMajor:   i.PreferredMajor,
		OpeningDate:      store.FormatTime(i.OpeningDate, models.DateLayout),
		ClosingDate:      store.FormatTime(i.ClosingDate, models.DateLayout),
		StartDate:        store.FormatTime(i.StartDate, models.DateLayout),
		EndDate:          store.FormatTime(i.EndDate, models.DateLayout),
		TotalSlots:       i.TotalSlots,
		FilledSlots:      i.FilledSlots,
		Status:           i.Status,
		RepresentativeID: i.RepresentativeID,
		Visible:          i.Visible,
	}
}

// NewInternshipResponseSlice converts a slice of internship models.
func NewInternshipResponseSlice(internships []models.Internship) []InternshipResponse {
	responses := make([]InternshipResponse, 0, len(internships))
	for _, internship := range internships {
		responses = append(responses, NewInternshipResponse(internship))
	}
	return responses
}
