package models

import (
	"strings"
	"time"
)

// InternshipLevel grades an opportunity by expected experience.
type InternshipLevel string

const (
	LevelBasic        InternshipLevel = "BASIC"
	LevelIntermediate InternshipLevel = "INTERMEDIATE"
	LevelAdvanced     InternshipLevel = "ADVANCED"
)

// ParseInternshipLevel maps a stored value onto an InternshipLevel.
func ParseInternshipLevel(value string) (InternshipLevel, bool) {
	switch InternshipLevel(strings.ToUpper(strings.TrimSpace(value))) {
	case LevelBasic:
		return LevelBasic, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	default:
		return LevelBasic, false
	}
}

// InternshipStatus tracks the review and capacity state of an opportunity.
type InternshipStatus string

const (
	InternshipPending  InternshipStatus = "PENDING"
	InternshipApproved InternshipStatus = "APPROVED"
	InternshipRejected InternshipStatus = "REJECTED"
	InternshipFilled   InternshipStatus = "FILLED"
)

// ParseInternshipStatus maps a stored value onto an InternshipStatus.
func ParseInternshipStatus(value string) (InternshipStatus, bool) {
	switch InternshipStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case InternshipPending:
		return InternshipPending, true
	case InternshipApproved:
		return InternshipApproved, true
	case InternshipRejected:
		return InternshipRejected, true
	case InternshipFilled:
		return InternshipFilled, true
	default:
		return InternshipPending, false
	}
}

// PreferredMajorAny marks an opportunity as open to every major.
const PreferredMajorAny = "Any"

// MaxSlots caps the total placement positions of one opportunity.
const MaxSlots = 10

// Internship is a placement opportunity posted by a company representative.
type Internship struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Level            InternshipLevel  `json:"level"`
	PreferredMajor   string           `json:"preferred_major"`
	OpeningDate      time.Time        `json:"opening_date"`
	ClosingDate      time.Time        `json:"closing_date"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	TotalSlots       int              `json:"total_slots"`
	FilledSlots      int              `json:"filled_slots"`
	Status           InternshipStatus `json:"status"`
	RepresentativeID string           `json:"representative_id"`
	Visible          bool             `json:"visible"`
}

// AcceptingApplications reports whether the opportunity is open to new
// applications at the given instant: approved, visible, and within its
// opening/closing window.
func (i Internship) AcceptingApplications(now time.Time) bool {
	if i.Status != InternshipApproved || !i.Visible {
		return false
	}
	if now.Before(i.OpeningDate) {
		return false
	}
	// Applications close at the end of the closing date.
	return now.Before(i.ClosingDate.AddDate(0, 0, 1))
}

// OpenToYear reports whether a student of the given study year may apply.
// Basic opportunities are open to everyone; intermediate and advanced ones
// require year three or above.
func (i Internship) OpenToYear(year int) bool {
	if i.Level == LevelBasic {
		return true
	}
	return year >= 3
}

// OpenToMajor reports whether a student of the given major may apply.
func (i Internship) OpenToMajor(major string) bool {
	if strings.EqualFold(i.PreferredMajor, PreferredMajorAny) || i.PreferredMajor == "" {
		return true
	}
	return strings.EqualFold(i.PreferredMajor, major)
}

// Editable reports whether the owning representative may still change the
// posting. Approved and filled opportunities are frozen.
func (i Internship) Editable() bool {
	return i.Status == InternshipPending || i.Status == InternshipRejected
}

// Deletable reports whether the owner may remove the posting: while still
// under or failed review, or once an approved window has closed.
func (i Internship) Deletable(now time.Time) bool {
	if i.Editable() {
		return true
	}
	return i.Status == InternshipApproved && !now.Before(i.ClosingDate.AddDate(0, 0, 1))
}

// FillSlot consumes one placement position, flipping the status to FILLED at
// capacity.
func (i *Internship) FillSlot() {
	i.FilledSlots++
	if i.FilledSlots >= i.TotalSlots {
		i.FilledSlots = i.TotalSlots
		i.Status = InternshipFilled
	}
}

// ReleaseSlot returns one consumed position, reopening a filled opportunity.
func (i *Internship) ReleaseSlot() {
	if i.FilledSlots > 0 {
		i.FilledSlots--
	}
	if i.Status == InternshipFilled && i.FilledSlots < i.TotalSlots {
		i.Status = InternshipApproved
	}
}
