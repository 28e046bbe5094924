package store

import (
	"fmt"
	"sort"
	"strings"
)

// Lockable is one table as seen by Atomic. Only tables in this package
// implement it.
type Lockable interface {
	tableName() string
	tableRank() int
	lockWrite()
	unlockWrite()
	beginAtomic()
	touched() bool
	rollbackLocked() // discard staged mutations
	commitLocked() error
}

// PartialFlushError reports a multi-table workflow whose cache mutations all
// applied but whose CSV flushes only partially succeeded. There is no shared
// transaction log across files, so the failed tables' files lag their caches
// until the next successful flush.
type PartialFlushError struct {
	Persisted []string
	Failed    []string
	Errs      []error
}

func (e *PartialFlushError) Error() string {
	return fmt.Sprintf("store: partial csv flush: persisted [%s], failed [%s]: %v",
		strings.Join(e.Persisted, " "), strings.Join(e.Failed, " "), e.Errs[0])
}

// Unwrap exposes the underlying flush failures.
func (e *PartialFlushError) Unwrap() []error {
	return e.Errs
}

// Atomic runs fn with every listed table write-locked, acquiring locks in the
// fixed global rank order so concurrent workflows over overlapping tables
// cannot deadlock. fn reads through Peek/Scan and mutates through
// Stage/StageDelete; if fn returns an error nothing is applied. On success
// all staged mutations land in the caches before any lock is released, then
// each touched table's CSV file is rewritten. Flush failures surface as a
// PartialFlushError naming which entity types were durably updated.
func Atomic(fn func() error, tables ...Lockable) error {
	ordered := make([]Lockable, 0, len(tables))
	seen := make(map[int]struct{}, len(tables))
	for _, table := range tables {
		if _, dup := seen[table.tableRank()]; dup {
			continue
		}
		seen[table.tableRank()] = struct{}{}
		ordered = append(ordered, table)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].tableRank() < ordered[j].tableRank()
	})

	for _, table := range ordered {
		table.lockWrite()
		table.beginAtomic()
	}
	defer func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			ordered[i].unlockWrite()
		}
	}()

	if err := fn(); err != nil {
		for _, table := range ordered {
			table.rollbackLocked()
		}
		return err
	}

	var persisted, failed []string
	var errs []error
	for _, table := range ordered {
		if !table.touched() {
			table.rollbackLocked()
			continue
		}
		if err := table.commitLocked(); err != nil {
			failed = append(failed, table.tableName())
			errs = append(errs, err)
			continue
		}
		persisted = append(persisted, table.tableName())
	}

	if len(errs) > 0 {
		return &PartialFlushError{Persisted: persisted, Failed: failed, Errs: errs}
	}
	return nil
}
