package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/apperr"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
)

func validCreatePayload() dto.InternshipCreateRequest {
	return dto.InternshipCreateRequest{
		Title:          "Backend Intern",
		Description:    "Work on the placement platform",
		Level:          "BASIC",
		PreferredMajor: "Computer Science",
		OpeningDate:    "2025-06-01",
		ClosingDate:    "2025-06-30",
		StartDate:      "2025-07-01",
		EndDate:        "2025-12-31",
		TotalSlots:     3,
	}
}

func TestCreateInternshipLinksRepresentative(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	svc := newTestInternshipService(repos)

	resp, err := svc.Create(context.Background(), rep.ID, validCreatePayload())
	require.NoError(t, err)
	require.Equal(t, models.InternshipPending, resp.Status)
	require.True(t, resp.Visible)

	stored, err := repos.Representatives.FindByID(context.Background(), rep.ID)
	require.NoError(t, err)
	require.Contains(t, stored.InternshipIDs, resp.ID)
}

func TestCreateInternshipRequiresApprovedRepresentative(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalPending)
	svc := newTestInternshipService(repos)

	_, err := svc.Create(context.Background(), rep.ID, validCreatePayload())
	require.Equal(t, "representative-not-approved", apperr.RuleOf(err))
}

func TestCreateInternshipEnforcesOwnershipCap(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	for i := 0; i < models.MaxOwnedInternships; i++ {
		id := fmt.Sprintf("int-%d", i)
		seedInternship(t, repos, id, rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
		rep.AddInternshipID(id)
	}
	require.NoError(t, repos.Representatives.Save(context.Background(), rep))
	svc := newTestInternshipService(repos)

	_, err := svc.Create(context.Background(), rep.ID, validCreatePayload())
	require.Equal(t, "max-internships", apperr.RuleOf(err))
}

func TestCreateInternshipRejectsBadDateOrder(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	svc := newTestInternshipService(repos)

	payload := validCreatePayload()
	payload.StartDate = "2025-06-15" // before the window closes
	_, err := svc.Create(context.Background(), rep.ID, payload)
	require.Equal(t, "invalid-date-order", apperr.RuleOf(err))

	payload = validCreatePayload()
	payload.OpeningDate = "not-a-date"
	_, err = svc.Create(context.Background(), rep.ID, payload)
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestUpdateInternshipFrozenOnceApproved(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	svc := newTestInternshipService(repos)

	title := "New Title"
	_, err := svc.Update(context.Background(), rep.ID, "int-1", dto.InternshipUpdateRequest{Title: &title})
	require.Equal(t, "not-editable", apperr.RuleOf(err))
}

func TestUpdateRejectedInternshipResubmits(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	internship := seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	internship.Status = models.InternshipRejected
	require.NoError(t, repos.Internships.Save(context.Background(), internship))
	svc := newTestInternshipService(repos)

	description := "Reworked description"
	resp, err := svc.Update(context.Background(), rep.ID, "int-1",
		dto.InternshipUpdateRequest{Description: &description})
	require.NoError(t, err)
	require.Equal(t, models.InternshipPending, resp.Status)
	require.Equal(t, description, resp.Description)
}

func TestDeleteInternshipRules(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	approved := seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	pending := seedInternship(t, repos, "int-2", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	pending.Status = models.InternshipPending
	require.NoError(t, repos.Internships.Save(context.Background(), pending))
	rep.AddInternshipID(approved.ID)
	rep.AddInternshipID(pending.ID)
	require.NoError(t, repos.Representatives.Save(context.Background(), rep))
	svc := newTestInternshipService(repos)

	err := svc.Delete(context.Background(), rep.ID, approved.ID)
	require.Equal(t, "not-deletable", apperr.RuleOf(err))

	require.NoError(t, svc.Delete(context.Background(), rep.ID, pending.ID))
	require.False(t, repos.Internships.ExistsByID(context.Background(), pending.ID))

	stored, err := repos.Representatives.FindByID(context.Background(), rep.ID)
	require.NoError(t, err)
	require.NotContains(t, stored.InternshipIDs, pending.ID)
	require.Contains(t, stored.InternshipIDs, approved.ID)
}

func TestSetVisibilityRequiresOwnership(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	seedRepresentative(t, repos, "rep-2", models.ApprovalApproved)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	svc := newTestInternshipService(repos)

	_, err := svc.SetVisibility(context.Background(), "rep-2", "int-1", false)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	resp, err := svc.SetVisibility(context.Background(), rep.ID, "int-1", false)
	require.NoError(t, err)
	require.False(t, resp.Visible)
}

func TestReviewInternshipByStaff(t *testing.T) {
	repos := newTestRepos(t)
	staff := seedStaff(t, repos, "stf-1")
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	internship := seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	internship.Status = models.InternshipPending
	require.NoError(t, repos.Internships.Save(context.Background(), internship))
	svc := newTestInternshipService(repos)

	_, err := svc.Review(context.Background(), "nobody", "int-1", true)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	resp, err := svc.Review(context.Background(), staff.ID, "int-1", true)
	require.NoError(t, err)
	require.Equal(t, models.InternshipApproved, resp.Status)

	_, err = svc.Review(context.Background(), staff.ID, "int-1", false)
	require.Equal(t, "already-decided", apperr.RuleOf(err))
}

func TestReviewInternshipConcurrentDecisionsSingleWinner(t *testing.T) {
	repos := newTestRepos(t)
	staff := seedStaff(t, repos, "stf-1")
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	internship := seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	internship.Status = models.InternshipPending
	require.NoError(t, repos.Internships.Save(context.Background(), internship))
	svc := newTestInternshipService(repos)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Review(context.Background(), staff.ID, "int-1", i == 0)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, reviewErr := range errs {
		if reviewErr == nil {
			winners++
			continue
		}
		require.Equal(t, "already-decided", apperr.RuleOf(reviewErr))
	}
	require.Equal(t, 1, winners)

	stored, err := repos.Internships.FindByID(context.Background(), "int-1")
	require.NoError(t, err)
	require.NotEqual(t, models.InternshipPending, stored.Status)
}

func TestListOpenForFiltersEligibility(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	student := seedStudent(t, repos, "stu-1", "Computer Science", 2)
	seedInternship(t, repos, "int-basic", rep.ID, models.LevelBasic, "Computer Science", 3)
	seedInternship(t, repos, "int-adv", rep.ID, models.LevelAdvanced, models.PreferredMajorAny, 3)
	seedInternship(t, repos, "int-other", rep.ID, models.LevelBasic, "History", 3)
	hidden := seedInternship(t, repos, "int-hidden", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	hidden.Visible = false
	require.NoError(t, repos.Internships.Save(context.Background(), hidden))
	svc := newTestInternshipService(repos)

	open, err := svc.ListOpenFor(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, "int-basic", open[0].ID)
}
