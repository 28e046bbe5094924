package models

// Staff is a career center administrator. Administrative capability follows
// from the role itself; the record carries no extra permission flags.
type Staff struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Password   string `json:"-"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
