// Package store implements the CSV-backed entity caches: one in-memory map
// per entity type guarded by a reader-writer lock, rewritten wholesale to its
// CSV file on every mutation. The file is a snapshot target; the map is the
// source of truth for all reads.
package store

import (
	"strconv"
	"strings"
	"time"
)

// ListSeparator joins multi-valued ID cells within one CSV column.
const ListSeparator = ";"

// Row is one decoded CSV record keyed by header column name. Lookup helpers
// fall back to documented defaults so older files with missing columns still
// load.
type Row map[string]string

// String returns the trimmed cell value, or "" when the column is absent.
func (r Row) String(col string) string {
	return strings.TrimSpace(r[col])
}

// StringDefault returns the cell value, or def when absent or empty.
func (r Row) StringDefault(col, def string) string {
	if value := r.String(col); value != "" {
		return value
	}
	return def
}

// Int parses the cell as an integer, falling back to def.
func (r Row) Int(col string, def int) int {
	value := r.String(col)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

// Bool parses the cell as a boolean; absent or malformed cells are false.
func (r Row) Bool(col string) bool {
	parsed, err := strconv.ParseBool(r.String(col))
	if err != nil {
		return false
	}
	return parsed
}

// Time parses the cell using the given layout; absent or malformed cells
// yield the zero time.
func (r Row) Time(col, layout string) time.Time {
	value := r.String(col)
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// List splits a semicolon-joined cell into its values, preserving order.
func (r Row) List(col string) []string {
	value := r.String(col)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ListSeparator)
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// JoinList renders a multi-valued cell from its values.
func JoinList(values []string) string {
	return strings.Join(values, ListSeparator)
}

// FormatTime renders a timestamp cell; the zero time renders as "".
func FormatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

// FormatBool renders a boolean cell.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// FormatInt renders an integer cell.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}
