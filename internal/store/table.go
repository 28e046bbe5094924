package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNotFound indicates a lookup of an ID absent from the cache.
var ErrNotFound = errors.New("store: not found")

// Codec translates between an entity and one CSV row.
type Codec[T any] interface {
	// Header names the fixed column set of the entity's CSV file.
	Header() []string
	// ID extracts the entity's unique identifier.
	ID(entity T) string
	// Encode renders the entity as one record in Header order.
	Encode(entity T) []string
	// Decode rebuilds an entity from a record; missing cells take defaults.
	Decode(row Row) (T, error)
}

// WriteError reports a CSV rewrite failure after the in-memory cache was
// already mutated. The file keeps its previous snapshot (the rewrite goes
// through a temp file and an atomic rename), so cache and file diverge until
// the next successful flush.
type WriteError struct {
	Table string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: cache updated but csv flush for %s failed: %v", e.Table, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Table is one entity type's cache: a map keyed by entity ID behind a single
// reader-writer lock, synchronized to a CSV file on every mutation. Reads
// never touch the file.
type Table[T any] struct {
	name   string
	rank   int
	path   string
	codec  Codec[T]
	logger zerolog.Logger

	mu      sync.RWMutex
	rows    map[string]T
	held    bool
	pending map[string]T
	removed map[string]struct{}
}

// NewTable constructs an empty table. rank fixes the table's position in the
// global lock-acquisition order used by Atomic.
func NewTable[T any](name string, rank int, path string, codec Codec[T], logger zerolog.Logger) *Table[T] {
	return &Table[T]{
		name:   name,
		rank:   rank,
		path:   path,
		codec:  codec,
		logger: logger.With().Str("table", name).Logger(),
		rows:   make(map[string]T),
	}
}

// Load parses the CSV file into the cache, replacing its contents. A missing
// file yields an empty cache; malformed records are logged and skipped, not
// fatal.
func (t *Table[T]) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	file, err := os.Open(t.path)
	if errors.Is(err, os.ErrNotExist) {
		t.rows = make(map[string]T)
		t.logger.Info().Str("path", t.path).Msg("csv file missing, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: open %s: %w", t.name, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("store: parse %s: %w", t.name, err)
	}

	rows := make(map[string]T)
	if len(records) > 0 {
		header := records[0]
		for line, record := range records[1:] {
			row := make(Row, len(header))
			for i, col := range header {
				if i < len(record) {
					row[col] = record[i]
				}
			}

			entity, err := t.codec.Decode(row)
			if err != nil {
				t.logger.Warn().Err(err).Int("line", line+2).Msg("skipping malformed record")
				continue
			}

			id := t.codec.ID(entity)
			if id == "" {
				t.logger.Warn().Int("line", line+2).Msg("skipping record without identifier")
				continue
			}
			rows[id] = entity
		}
	}

	t.rows = rows
	t.logger.Info().Int("count", len(rows)).Msg("csv file loaded")
	return nil
}

// Get returns the cached entity by ID.
func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entity, ok := t.rows[id]
	return entity, ok
}

// All returns every cached entity, ordered by ID for stable output.
func (t *Table[T]) All() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.collect(func(T) bool { return true })
}

// Find returns the cached entities matching pred, ordered by ID.
func (t *Table[T]) Find(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.collect(pred)
}

// Exists reports whether an entity with the given ID is cached.
func (t *Table[T]) Exists(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

// Count returns the number of cached entities.
func (t *Table[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Put inserts or replaces the entity by ID, then rewrites the CSV file. On a
// flush failure the cache keeps the new value and a WriteError is returned.
func (t *Table[T]) Put(entity T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[t.codec.ID(entity)] = entity
	return t.flushLocked()
}

// Delete removes the entity by ID and rewrites the CSV file.
func (t *Table[T]) Delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return t.flushLocked()
}

// Peek reads an entity while the table is locked by Atomic, seeing staged
// mutations of the current workflow.
func (t *Table[T]) Peek(id string) (T, bool) {
	t.requireHeld("Peek")
	if _, gone := t.removed[id]; gone {
		var zero T
		return zero, false
	}
	if entity, ok := t.pending[id]; ok {
		return entity, true
	}
	entity, ok := t.rows[id]
	return entity, ok
}

// Scan filters entities while the table is locked by Atomic, seeing staged
// mutations of the current workflow.
func (t *Table[T]) Scan(pred func(T) bool) []T {
	t.requireHeld("Scan")
	merged := make(map[string]T, len(t.rows))
	for id, entity := range t.rows {
		merged[id] = entity
	}
	for id, entity := range t.pending {
		merged[id] = entity
	}
	for id := range t.removed {
		delete(merged, id)
	}

	ids := make([]string, 0, len(merged))
	for id, entity := range merged {
		if pred(entity) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	results := make([]T, 0, len(ids))
	for _, id := range ids {
		results = append(results, merged[id])
	}
	return results
}

// Stage records an insert or replacement to be applied when the surrounding
// Atomic commits. Valid only inside Atomic over this table.
func (t *Table[T]) Stage(entity T) {
	t.requireHeld("Stage")
	id := t.codec.ID(entity)
	delete(t.removed, id)
	t.pending[id] = entity
}

// StageDelete records a removal to be applied when the surrounding Atomic
// commits.
func (t *Table[T]) StageDelete(id string) {
	t.requireHeld("StageDelete")
	delete(t.pending, id)
	t.removed[id] = struct{}{}
}

func (t *Table[T]) requireHeld(op string) {
	if !t.held {
		panic(fmt.Sprintf("store: %s on table %s outside Atomic", op, t.name))
	}
}

// collect assumes at least a read lock is held.
func (t *Table[T]) collect(pred func(T) bool) []T {
	ids := make([]string, 0, len(t.rows))
	for id, entity := range t.rows {
		if pred(entity) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	results := make([]T, 0, len(ids))
	for _, id := range ids {
		results = append(results, t.rows[id])
	}
	return results
}

// flushLocked rewrites the whole CSV file from the cache via a temp file and
// an atomic rename, so a crash mid-write never leaves a torn file.
func (t *Table[T]) flushLocked() error {
	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return &WriteError{Table: t.name, Err: err}
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(t.codec.Header())
	if writeErr == nil {
		ids := make([]string, 0, len(t.rows))
		for id := range t.rows {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if writeErr = writer.Write(t.codec.Encode(t.rows[id])); writeErr != nil {
				break
			}
		}
	}
	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpName, t.path)
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return &WriteError{Table: t.name, Err: writeErr}
	}
	return nil
}

// Lockable plumbing used by Atomic.

func (t *Table[T]) tableName() string { return t.name }
func (t *Table[T]) tableRank() int    { return t.rank }
func (t *Table[T]) lockWrite()        { t.mu.Lock() }
func (t *Table[T]) unlockWrite()      { t.mu.Unlock() }

func (t *Table[T]) beginAtomic() {
	t.held = true
	t.pending = make(map[string]T)
	t.removed = make(map[string]struct{})
}

func (t *Table[T]) touched() bool {
	return len(t.pending) > 0 || len(t.removed) > 0
}

func (t *Table[T]) rollbackLocked() {
	t.held = false
	t.pending = nil
	t.removed = nil
}

func (t *Table[T]) commitLocked() error {
	for id, entity := range t.pending {
		t.rows[id] = entity
	}
	for id := range t.removed {
		delete(t.rows, id)
	}
	t.held = false
	t.pending = nil
	t.removed = nil
	return t.flushLocked()
}
