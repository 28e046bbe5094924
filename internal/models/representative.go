package models

import "strings"

// ApprovalStatus tracks the review state of a company representative account.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// ParseApprovalStatus maps a stored value onto an ApprovalStatus, reporting
// whether the value was recognised.
func ParseApprovalStatus(value string) (ApprovalStatus, bool) {
	switch ApprovalStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case ApprovalPending:
		return ApprovalPending, true
	case ApprovalApproved:
		return ApprovalApproved, true
	case ApprovalRejected:
		return ApprovalRejected, true
	default:
		return ApprovalPending, false
	}
}

// Representative is a company account that posts internship opportunities.
// It must be approved by career center staff before it can post.
type Representative struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Password      string         `json:"-"`
	Email         string         `json:"email"`
	CompanyName   string         `json:"company_name"`
	Industry      string         `json:"industry"`
	Position      string         `json:"position"`
	Status        ApprovalStatus `json:"status"`
	InternshipIDs []string       `json:"internship_ids"`
}

// MaxOwnedInternships caps how many opportunities one representative may own.
const MaxOwnedInternships = 5

// AddInternshipID appends an owned internship reference, preserving order.
func (r *Representative) AddInternshipID(id string) {
	for _, existing := range r.InternshipIDs {
		if existing == id {
			return
		}
	}
	r.InternshipIDs = append(r.InternshipIDs, id)
}

// RemoveInternshipID drops an owned internship reference if present.
func (r *Representative) RemoveInternshipID(id string) {
	for i, existing := range r.InternshipIDs {
		if existing == id {
			r.InternshipIDs = append(r.InternshipIDs[:i], r.InternshipIDs[i+1:]...)
			return
		}
	}
}
