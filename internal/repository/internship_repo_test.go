package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(models.DateLayout, value)
	require.NoError(t, err)
	return parsed
}

func TestInternshipRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internships.csv")
	repo := NewInternshipRepository(path, zerolog.Nop())
	require.NoError(t, repo.Load())

	internship := models.Internship{
		ID:               "int-1",
		Title:            "Backend Intern",
		Description:      "Work on the placement API",
		Level:            models.LevelIntermediate,
		PreferredMajor:   "Computer Science",
		OpeningDate:      mustDate(t, "2026-01-01"),
		ClosingDate:      mustDate(t, "2026-02-01"),
		StartDate:        mustDate(t, "2026-03-01"),
		EndDate:          mustDate(t, "2026-06-30"),
		TotalSlots:       4,
		FilledSlots:      1,
		Status:           models.InternshipApproved,
		RepresentativeID: "rep-1",
		Visible:          true,
	}
	require.NoError(t, repo.Save(context.Background(), internship))

	reloaded := NewInternshipRepository(path, zerolog.Nop())
	require.NoError(t, reloaded.Load())
	got, err := reloaded.FindByID(context.Background(), "int-1")
	require.NoError(t, err)
	require.Equal(t, internship, got)
}

func TestInternshipRepositoryStatusFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internships.csv")
	contents := "InternshipID,Title,Level,Status\nint-1,Ops Intern,EXPERT,OPEN\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	repo := NewInternshipRepository(path, zerolog.Nop())
	require.NoError(t, repo.Load())

	got, err := repo.FindByID(context.Background(), "int-1")
	require.NoError(t, err)
	require.Equal(t, models.InternshipPending, got.Status)
	require.Equal(t, models.LevelBasic, got.Level)
	require.Equal(t, models.PreferredMajorAny, got.PreferredMajor)
	require.Equal(t, 1, got.TotalSlots)
}

func TestInternshipRepositoryFindAccepting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internships.csv")
	repo := NewInternshipRepository(path, zerolog.Nop())
	require.NoError(t, repo.Load())

	ctx := context.Background()
	now := mustDate(t, "2026-01-15")

	open := models.Internship{
		ID: "int-open", Status: models.InternshipApproved, Visible: true,
		OpeningDate: mustDate(t, "2026-01-01"), ClosingDate: mustDate(t, "2026-02-01"),
	}
	hidden := open
	hidden.ID = "int-hidden"
	hidden.Visible = false
	closed := open
	closed.ID = "int-closed"
	closed.ClosingDate = mustDate(t, "2026-01-10")
	pending := open
	pending.ID = "int-pending"
	pending.Status = models.InternshipPending

	for _, i := range []models.Internship{open, hidden, closed, pending} {
		require.NoError(t, repo.Save(ctx, i))
	}

	accepting, err := repo.FindAccepting(ctx, now)
	require.NoError(t, err)
	require.Len(t, accepting, 1)
	require.Equal(t, "int-open", accepting[0].ID)

	byRep, err := repo.FindByRepresentative(ctx, "rep-1")
	require.NoError(t, err)
	require.Empty(t, byRep)
}
