// Package apperr defines the error taxonomy shared by the repository and
// service layers. Handlers map each kind onto an HTTP status; the core stays
// transport-agnostic.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary mapping.
type Kind uint8

const (
	// KindUnknown covers errors that carry no taxonomy entry.
	KindUnknown Kind = iota
	// KindNotFound marks a lookup of a missing entity ID.
	KindNotFound
	// KindInvalidInput marks malformed or missing request fields.
	KindInvalidInput
	// KindUnauthorized marks bad credentials or an insufficient role.
	KindUnauthorized
	// KindRuleViolation marks a business invariant breach; Rule names it.
	KindRuleViolation
	// KindPersistence marks a CSV read or write failure.
	KindPersistence
)

// String names the kind for logs.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindRuleViolation:
		return "rule_violation"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is the typed rejection surfaced by the domain layer.
type Error struct {
	Kind    Kind
	Rule    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s: %s", e.Rule, e.Message)
	}
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a resource-not-found error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput builds an invalid-input error.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds an unauthorized error.
func Unauthorized(format string, args ...any) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Rule builds a business-rule-violation error naming the violated rule.
func Rule(rule, format string, args ...any) error {
	return &Error{Kind: KindRuleViolation, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a storage failure.
func Persistence(err error, format string, args ...any) error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the taxonomy kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// RuleOf extracts the violated rule name, or "".
func RuleOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Rule
	}
	return ""
}
