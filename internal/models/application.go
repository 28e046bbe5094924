package models

import (
	"strings"
	"time"
)

// ApplicationStatus tracks an application along its lifecycle:
// PENDING -> SUCCESSFUL or UNSUCCESSFUL, then SUCCESSFUL -> ACCEPTED or
// WITHDRAWN. Transitions never move backwards.
type ApplicationStatus string

const (
	ApplicationPending      ApplicationStatus = "PENDING"
	ApplicationSuccessful   ApplicationStatus = "SUCCESSFUL"
	ApplicationUnsuccessful ApplicationStatus = "UNSUCCESSFUL"
	ApplicationAccepted     ApplicationStatus = "ACCEPTED"
	ApplicationWithdrawn    ApplicationStatus = "WITHDRAWN"
)

// ParseApplicationStatus maps a stored value onto an ApplicationStatus.
func ParseApplicationStatus(value string) (ApplicationStatus, bool) {
	switch ApplicationStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case ApplicationPending:
		return ApplicationPending, true
	case ApplicationSuccessful:
		return ApplicationSuccessful, true
	case ApplicationUnsuccessful:
		return ApplicationUnsuccessful, true
	case ApplicationAccepted:
		return ApplicationAccepted, true
	case ApplicationWithdrawn:
		return ApplicationWithdrawn, true
	default:
		return ApplicationPending, false
	}
}

// Application links a student to an internship opportunity.
type Application struct {
	ID                    string            `json:"id"`
	StudentID             string            `json:"student_id"`
	InternshipID          string            `json:"internship_id"`
	Status                ApplicationStatus `json:"status"`
	SubmissionDate        time.Time         `json:"submission_date"`
	StatusUpdateDate      time.Time         `json:"status_update_date"`
	PlacementAccepted     bool              `json:"placement_accepted"`
	PlacementAcceptedDate time.Time         `json:"placement_accepted_date,omitempty"`
	Comments              string            `json:"comments,omitempty"`
}

// Active reports whether the application still counts toward the student's
// application cap.
func (a Application) Active() bool {
	return a.Status == ApplicationPending || a.Status == ApplicationSuccessful
}

// Transition moves the application to a new status, stamping the update time.
func (a *Application) Transition(status ApplicationStatus, now time.Time) {
	a.Status = status
	a.StatusUpdateDate = now
}
