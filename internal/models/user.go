package models

import "strings"

// Role identifies the kind of account behind a request.
type Role string

const (
	RoleStudent        Role = "STUDENT"
	RoleRepresentative Role = "COMPANY_REPRESENTATIVE"
	RoleStaff          Role = "CAREER_CENTER_STAFF"
)

// DefaultPassword is assigned when a stored record carries no password cell.
const DefaultPassword = "password"

// Date layouts used across every CSV file and API payload.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ParseRole maps a stored role tag onto a Role, reporting whether it was known.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleRepresentative:
		return RoleRepresentative, true
	case RoleStaff:
		return RoleStaff, true
	default:
		return "", false
	}
}
