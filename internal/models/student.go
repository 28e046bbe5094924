package models

// Student is a learner account that can browse and apply to internships.
type Student struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Password             string   `json:"-"`
	Major                string   `json:"major"`
	Year                 int      `json:"year"`
	Email                string   `json:"email"`
	ApplicationIDs       []string `json:"application_ids"`
	AcceptedPlacementID  string   `json:"accepted_placement_id,omitempty"`
	HasAcceptedPlacement bool     `json:"has_accepted_placement"`
}

// MaxActiveApplications caps how many pending or successful applications a
// student may hold at once.
const MaxActiveApplications = 3

// AddApplicationID appends an application reference, preserving insertion order.
func (s *Student) AddApplicationID(id string) {
	for _, existing := range s.ApplicationIDs {
		if existing == id {
			return
		}
	}
	s.ApplicationIDs = append(s.ApplicationIDs, id)
}

// ClearPlacement resets the accepted placement markers, used when an approved
// withdrawal releases a committed slot.
func (s *Student) ClearPlacement() {
	s.AcceptedPlacementID = ""
	s.HasAcceptedPlacement = false
}
