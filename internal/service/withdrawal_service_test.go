package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/apperr"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
)

func TestWithdrawalRequestCreatesPending(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationPending)
	svc := newTestWithdrawalService(repos)

	resp, err := svc.Request(context.Background(), student.ID,
		dto.WithdrawalCreateRequest{ApplicationID: "app-1", Reason: "found another offer"})
	require.NoError(t, err)
	require.Equal(t, models.WithdrawalPending, resp.Status)
	require.Equal(t, "found another offer", resp.Reason)
}

func TestWithdrawalRequestRejectsDuplicatePending(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationPending)
	svc := newTestWithdrawalService(repos)

	_, err := svc.Request(context.Background(), student.ID,
		dto.WithdrawalCreateRequest{ApplicationID: "app-1", Reason: "first"})
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), student.ID,
		dto.WithdrawalCreateRequest{ApplicationID: "app-1", Reason: "second"})
	require.Equal(t, "duplicate-pending-withdrawal", apperr.RuleOf(err))
}

func TestWithdrawalRequestRejectsDecidedApplication(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationUnsuccessful)
	svc := newTestWithdrawalService(repos)

	_, err := svc.Request(context.Background(), student.ID,
		dto.WithdrawalCreateRequest{ApplicationID: "app-1", Reason: "too late"})
	require.Equal(t, "not-withdrawable", apperr.RuleOf(err))
}

func TestWithdrawalRequestRejectsForeignStudent(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	seedStudent(t, repos, "stu-2", "Computer Science", 3)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationPending)
	svc := newTestWithdrawalService(repos)

	_, err := svc.Request(context.Background(), "stu-2",
		dto.WithdrawalCreateRequest{ApplicationID: "app-1", Reason: "not mine"})
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestWithdrawalCancelAndReasonUpdate(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationPending)
	svc := newTestWithdrawalService(repos)

	created, err := svc.Request(context.Background(), student.ID,
		dto.WithdrawalCreateRequest{ApplicationID: "app-1", Reason: "initial"})
	require.NoError(t, err)

	updated, err := svc.UpdateReason(context.Background(), student.ID, created.ID,
		dto.WithdrawalUpdateRequest{Reason: "revised"})
	require.NoError(t, err)
	require.Equal(t, "revised", updated.Reason)

	cancelled, err := svc.Cancel(context.Background(), student.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, models.WithdrawalCancelled, cancelled.Status)

	_, err = svc.UpdateReason(context.Background(), student.ID, created.ID,
		dto.WithdrawalUpdateRequest{Reason: "too late"})
	require.Equal(t, "already-decided", apperr.RuleOf(err))
}

func TestProcessRequiresStaff(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTestWithdrawalService(repos)

	_, err := svc.Process(context.Background(), "nobody", "wd-1",
		dto.WithdrawalProcessRequest{Approve: true})
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestProcessApproveReleasesAcceptedPlacement(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	staff := seedStaff(t, repos, "stf-1")
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	student.HasAcceptedPlacement = true
	student.AcceptedPlacementID = "app-1"
	require.NoError(t, repos.Students.Save(context.Background(), student))

	internship := seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 1)
	internship.FilledSlots = 1
	internship.Status = models.InternshipFilled
	require.NoError(t, repos.Internships.Save(context.Background(), internship))

	application := seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationAccepted)
	application.PlacementAccepted = true
	require.NoError(t, repos.Applications.Save(context.Background(), application))

	require.NoError(t, repos.Withdrawals.Save(context.Background(), models.WithdrawalRequest{
		ID:            "wd-1",
		ApplicationID: "app-1",
		StudentID:     student.ID,
		Reason:        "relocating",
		Status:        models.WithdrawalPending,
		RequestDate:   testNow,
	}))
	svc := newTestWithdrawalService(repos)

	resp, err := svc.Process(context.Background(), staff.ID, "wd-1",
		dto.WithdrawalProcessRequest{Approve: true, Comments: "approved, good luck"})
	require.NoError(t, err)
	require.Equal(t, models.WithdrawalApproved, resp.Status)

	withdrawn, err := repos.Applications.FindByID(context.Background(), "app-1")
	require.NoError(t, err)
	require.Equal(t, models.ApplicationWithdrawn, withdrawn.Status)
	require.False(t, withdrawn.PlacementAccepted)

	reopened, err := repos.Internships.FindByID(context.Background(), "int-1")
	require.NoError(t, err)
	require.Equal(t, 0, reopened.FilledSlots)
	require.Equal(t, models.InternshipApproved, reopened.Status)

	cleared, err := repos.Students.FindByID(context.Background(), student.ID)
	require.NoError(t, err)
	require.False(t, cleared.HasAcceptedPlacement)
	require.Empty(t, cleared.AcceptedPlacementID)
}

func TestProcessRejectLeavesApplicationUntouched(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	staff := seedStaff(t, repos, "stf-1")
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationSuccessful)
	require.NoError(t, repos.Withdrawals.Save(context.Background(), models.WithdrawalRequest{
		ID:            "wd-1",
		ApplicationID: "app-1",
		StudentID:     student.ID,
		Reason:        "changed my mind",
		Status:        models.WithdrawalPending,
		RequestDate:   testNow,
	}))
	svc := newTestWithdrawalService(repos)

	resp, err := svc.Process(context.Background(), staff.ID, "wd-1",
		dto.WithdrawalProcessRequest{Approve: false, Comments: "deadline passed"})
	require.NoError(t, err)
	require.Equal(t, models.WithdrawalRejected, resp.Status)
	require.Equal(t, "deadline passed", resp.StaffComments)

	untouched, err := repos.Applications.FindByID(context.Background(), "app-1")
	require.NoError(t, err)
	require.Equal(t, models.ApplicationSuccessful, untouched.Status)

	_, err = svc.Process(context.Background(), staff.ID, "wd-1",
		dto.WithdrawalProcessRequest{Approve: true})
	require.Equal(t, "already-decided", apperr.RuleOf(err))
}

func TestProcessApproveRejectsDecidedApplication(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	staff := seedStaff(t, repos, "stf-1")
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationPending)
	svc := newTestWithdrawalService(repos)

	request, err := svc.Request(context.Background(), student.ID,
		dto.WithdrawalCreateRequest{ApplicationID: "app-1", Reason: "schedule conflict"})
	require.NoError(t, err)

	// The representative decides the application while the request waits.
	_, err = newTestApplicationService(repos).Review(context.Background(), rep.ID, "app-1",
		dto.ReviewRequest{Approve: false})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), staff.ID, request.ID,
		dto.WithdrawalProcessRequest{Approve: true})
	require.Equal(t, "not-withdrawable", apperr.RuleOf(err))

	application, err := repos.Applications.FindByID(context.Background(), "app-1")
	require.NoError(t, err)
	require.Equal(t, models.ApplicationUnsuccessful, application.Status)

	stored, err := repos.Withdrawals.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	require.Equal(t, models.WithdrawalPending, stored.Status)
}

func TestCancelAndProcessConcurrentSingleWinner(t *testing.T) {
	repos := newTestRepos(t)
	rep := seedRepresentative(t, repos, "rep-1", models.ApprovalApproved)
	staff := seedStaff(t, repos, "stf-1")
	student := seedStudent(t, repos, "stu-1", "Computer Science", 3)
	seedInternship(t, repos, "int-1", rep.ID, models.LevelBasic, models.PreferredMajorAny, 3)
	seedApplication(t, repos, "app-1", student.ID, "int-1", models.ApplicationSuccessful)
	require.NoError(t, repos.Withdrawals.Save(context.Background(), models.WithdrawalRequest{
		ID:            "wd-1",
		ApplicationID: "app-1",
		StudentID:     student.ID,
		Reason:        "changed my mind",
		Status:        models.WithdrawalPending,
		RequestDate:   testNow,
	}))
	svc := newTestWithdrawalService(repos)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.Cancel(context.Background(), student.ID, "wd-1")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.Process(context.Background(), staff.ID, "wd-1",
			dto.WithdrawalProcessRequest{Approve: false})
	}()
	wg.Wait()

	winners := 0
	for _, opErr := range errs {
		if opErr == nil {
			winners++
			continue
		}
		require.Equal(t, "already-decided", apperr.RuleOf(opErr))
	}
	require.Equal(t, 1, winners)

	stored, err := repos.Withdrawals.FindByID(context.Background(), "wd-1")
	require.NoError(t, err)
	require.NotEqual(t, models.WithdrawalPending, stored.Status)
}
