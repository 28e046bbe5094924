// Package repository provides one CSV-backed repository per entity type.
// Each repository owns an in-memory cache behind a reader-writer lock; every
// mutation rewrites the entity type's CSV file. Cross-entity workflows lock
// tables through store.Atomic in the fixed rank order declared here.
package repository

import (
	"errors"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Global lock-acquisition order. Workflows touching several entity types must
// acquire write locks in ascending rank to stay deadlock-free.
const (
	rankStudent = iota
	rankRepresentative
	rankStaff
	rankInternship
	rankApplication
	rankWithdrawal
)

// CSV file names under the data directory.
const (
	studentsFile        = "students.csv"
	representativesFile = "representatives.csv"
	staffFile           = "staff.csv"
	internshipsFile     = "internships.csv"
	applicationsFile    = "applications.csv"
	withdrawalsFile     = "withdrawals.csv"
)

// Repositories bundles every entity repository for wiring.
type Repositories struct {
	Students        StudentRepository
	Representatives RepresentativeRepository
	Staff           StaffRepository
	Internships     InternshipRepository
	Applications    ApplicationRepository
	Withdrawals     WithdrawalRepository
}

// New constructs the full repository set over CSV files in dataDir.
func New(dataDir string, logger zerolog.Logger) *Repositories {
	return &Repositories{
		Students:        NewStudentRepository(filepath.Join(dataDir, studentsFile), logger),
		Representatives: NewRepresentativeRepository(filepath.Join(dataDir, representativesFile), logger),
		Staff:           NewStaffRepository(filepath.Join(dataDir, staffFile), logger),
		Internships:     NewInternshipRepository(filepath.Join(dataDir, internshipsFile), logger),
		Applications:    NewApplicationRepository(filepath.Join(dataDir, applicationsFile), logger),
		Withdrawals:     NewWithdrawalRepository(filepath.Join(dataDir, withdrawalsFile), logger),
	}
}

// Load populates every cache from its CSV file. Missing files start empty;
// unreadable files surface as a joined error.
func (r *Repositories) Load() error {
	return errors.Join(
		r.Students.Load(),
		r.Representatives.Load(),
		r.Staff.Load(),
		r.Internships.Load(),
		r.Applications.Load(),
		r.Withdrawals.Load(),
	)
}
