package models

import (
	"strings"
	"time"
)

// WithdrawalStatus tracks a withdrawal request through staff review.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "PENDING"
	WithdrawalApproved  WithdrawalStatus = "APPROVED"
	WithdrawalRejected  WithdrawalStatus = "REJECTED"
	WithdrawalCancelled WithdrawalStatus = "CANCELLED"
)

// ParseWithdrawalStatus maps a stored value onto a WithdrawalStatus.
func ParseWithdrawalStatus(value string) (WithdrawalStatus, bool) {
	switch WithdrawalStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case WithdrawalPending:
		return WithdrawalPending, true
	case WithdrawalApproved:
		return WithdrawalApproved, true
	case WithdrawalRejected:
		return WithdrawalRejected, true
	case WithdrawalCancelled:
		return WithdrawalCancelled, true
	default:
		return WithdrawalPending, false
	}
}

// WithdrawalRequest asks staff to withdraw a student's application. At most
// one pending request may exist per application.
type WithdrawalRequest struct {
	ID            string           `json:"id"`
	ApplicationID string           `json:"application_id"`
	StudentID     string           `json:"student_id"`
	Reason        string           `json:"reason"`
	Status        WithdrawalStatus `json:"status"`
	RequestDate   time.Time        `json:"request_date"`
	ProcessedDate time.Time        `json:"processed_date,omitempty"`
	StaffComments string           `json:"staff_comments,omitempty"`
}
