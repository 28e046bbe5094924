package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/repository"
)

// Fixed clock for deterministic window and transition checks.
var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	repos := repository.New(t.TempDir(), testLogger())
	require.NoError(t, repos.Load())
	return repos
}

func seedStudent(t *testing.T, repos *repository.Repositories, id, major string, year int) models.Student {
	t.Helper()
	student := models.Student{
		ID:       id,
		Name:     "Student " + id,
		Password: models.DefaultPassword,
		Major:    major,
		Year:     year,
		Email:    id + "@e.ntu.edu.sg",
	}
	require.NoError(t, repos.Students.Save(context.Background(), student))
	return student
}

func seedRepresentative(t *testing.T, repos *repository.Repositories, id string, status models.ApprovalStatus) models.Representative {
	t.Helper()
	rep := models.Representative{
		ID:          id,
		Name:        "Rep " + id,
		Password:    models.DefaultPassword,
		Email:       id + "@corp.example.com",
		CompanyName: "Acme Pte Ltd",
		Industry:    "Technology",
		Position:    "HR Manager",
		Status:      status,
	}
	require.NoError(t, repos.Representatives.Save(context.Background(), rep))
	return rep
}

func seedStaff(t *testing.T, repos *repository.Repositories, id string) models.Staff {
	t.Helper()
	staff := models.Staff{
		ID:         id,
		Name:       "Staff " + id,
		Password:   models.DefaultPassword,
		Email:      id + "@ntu.edu.sg",
		Department: "Career Centre",
	}
	require.NoError(t, repos.Staff.Save(context.Background(), staff))
	return staff
}

// seedInternship stores an approved, visible opportunity whose application
// window contains testNow.
func seedInternship(t *testing.T, repos *repository.Repositories, id, repID string, level models.InternshipLevel, major string, slots int) models.Internship {
	t.Helper()
	internship := models.Internship{
		ID:               id,
		Title:            "Internship " + id,
		Description:      "Build things",
		Level:            level,
		PreferredMajor:   major,
		OpeningDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ClosingDate:      time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		StartDate:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		TotalSlots:       slots,
		Status:           models.InternshipApproved,
		RepresentativeID: repID,
		Visible:          true,
	}
	require.NoError(t, repos.Internships.Save(context.Background(), internship))
	return internship
}

func seedApplication(t *testing.T, repos *repository.Repositories, id, studentID, internshipID string, status models.ApplicationStatus) models.Application {
	t.Helper()
	application := models.Application{
		ID:             id,
		StudentID:      studentID,
		InternshipID:   internshipID,
		Status:         status,
		SubmissionDate: testNow.Add(-24 * time.Hour),
	}
	require.NoError(t, repos.Applications.Save(context.Background(), application))
	return application
}

func newTestAccountService(repos *repository.Repositories) *accountService {
	svc := NewAccountService(repos.Students, repos.Representatives, repos.Staff,
		validator.New(), "test-secret", time.Hour, testLogger()).(*accountService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func newTestInternshipService(repos *repository.Repositories) *internshipService {
	svc := NewInternshipService(repos.Internships, repos.Representatives, repos.Students,
		repos.Staff, validator.New(), testLogger()).(*internshipService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func newTestApplicationService(repos *repository.Repositories) *applicationService {
	svc := NewApplicationService(repos.Applications, repos.Students, repos.Internships,
		repos.Withdrawals, testLogger()).(*applicationService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func newTestWithdrawalService(repos *repository.Repositories) *withdrawalService {
	svc := NewWithdrawalService(repos.Withdrawals, repos.Applications, repos.Students,
		repos.Internships, repos.Staff, validator.New(), testLogger()).(*withdrawalService)
	svc.now = func() time.Time { return testNow }
	return svc
}
