package dto

import (
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// WithdrawalCreateRequest asks staff to withdraw an application.
type WithdrawalCreateRequest struct {
	ApplicationID string `json:"application_id" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
}

// WithdrawalUpdateRequest revises the reason of a pending request.
type WithdrawalUpdateRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// WithdrawalProcessRequest decides a pending request.
type WithdrawalProcessRequest struct {
	Approve  bool   `json:"approve"`
	Comments string `json:"comments"`
}

// WithdrawalResponse is the outward view of a withdrawal request.
type WithdrawalResponse struct {
	ID            string                  `json:"id"`
	ApplicationID string                  `json:"application_id"`
	StudentID     string                  `json:"student_id"`
	Reason        string                  `json:"reason"`
	Status        models.WithdrawalStatus `json:"status"`
	RequestDate   string                  `json:"request_date"`
	ProcessedDate string                  `json:"processed_date,omitempty"`
	StaffComments string                  `json:"staff_comments,omitempty"`
}

// NewWithdrawalResponse converts a withdrawal request model.
func NewWithdrawalResponse(w models.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		ID:            w.ID,
		ApplicationID: w.ApplicationID,
		StudentID:     w.StudentID,
		Reason:        w.Reason,
		Status:        w.Status,
		RequestDate:   store.FormatTime(w.RequestDate, models.DateTimeLayout),
		ProcessedDate: store.FormatTime(w.ProcessedDate, models.DateTimeLayout),
		StaffComments: w.StaffComments,
	}
}

// NewWithdrawalResponseSlice converts a slice of withdrawal request models.
func NewWithdrawalResponseSlice(requests []models.WithdrawalRequest) []WithdrawalResponse {
	responses := make([]WithdrawalResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, NewWithdrawalResponse(request))
	}
	return responses
}
