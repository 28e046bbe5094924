package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func approvedInternship() Internship {
	return Internship{
		ID:          "int-1",
		Status:      InternshipApproved,
		Visible:     true,
		OpeningDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ClosingDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestAcceptingApplicationsWindowBoundaries(t *testing.T) {
	internship := approvedInternship()
	endOfWindow := internship.ClosingDate.AddDate(0, 0, 1)

	require.False(t, internship.AcceptingApplications(internship.OpeningDate.Add(-time.Second)))
	require.True(t, internship.AcceptingApplications(internship.OpeningDate))
	require.True(t, internship.AcceptingApplications(endOfWindow.Add(-time.Second)))
	require.False(t, internship.AcceptingApplications(endOfWindow))
}

func TestDeletableStartsWhereAcceptingEnds(t *testing.T) {
	internship := approvedInternship()
	endOfWindow := internship.ClosingDate.AddDate(0, 0, 1)

	require.False(t, internship.Deletable(endOfWindow.Add(-time.Second)))
	require.True(t, internship.Deletable(endOfWindow))
}
