// Package service implements the domain rule layer and the multi-entity
// workflows on top of the CSV-backed repositories. Every mutating operation
// checks its business rules against cached state before staging any change;
// rejections surface as typed apperr values naming the violated rule.
package service

import (
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/apperr"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// newSanitizer builds the policy applied to user-supplied free text
// (descriptions, reasons, comments). Strict: all markup is stripped.
func newSanitizer() *bluemonday.Policy {
	return bluemonday.StrictPolicy()
}

func sanitizeText(policy *bluemonday.Policy, value string) string {
	return strings.TrimSpace(policy.Sanitize(value))
}

// persistErr normalizes storage failures into the persistence taxonomy,
// keeping rule rejections and other typed errors untouched.
func persistErr(err error) error {
	if err == nil {
		return nil
	}
	var writeErr *store.WriteError
	var partialErr *store.PartialFlushError
	if errors.As(err, &writeErr) || errors.As(err, &partialErr) {
		return apperr.Persistence(err, "csv flush failed")
	}
	return err
}
