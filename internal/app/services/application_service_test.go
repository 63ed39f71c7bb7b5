package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

func newApplicationServiceForTest(
	applications *stubApplications,
	internships *stubInternships,
	students *stubStudents,
	notifications *stubNotifications,
) *ApplicationService {
	return NewApplicationService(applications, internships, students, notifications, false, zerolog.Nop())
}

func activeInternship(id int64) *models.Internship {
	return &models.Internship{ID: id, Title: "Backend Intern", CompanyName: "Acme", IsActive: true}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	applications := newStubApplications()
	svc := newApplicationServiceForTest(
		applications,
		newStubInternships(activeInternship(10)),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		&stubNotifications{},
	)

	application, err := svc.Apply(context.Background(), 3, &dto.SubmitApplicationRequest{InternshipID: 10})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, application.Status)
	assert.Equal(t, int64(3), application.StudentID)
	assert.Equal(t, int64(10), application.InternshipID)
	assert.NotZero(t, application.ID)
}

func TestApplyRejectsDuplicate(t *testing.T) {
	applications := newStubApplications(&models.Application{
		ID: 1, StudentID: 3, InternshipID: 10, Status: models.ApplicationPending,
	})
	svc := newApplicationServiceForTest(
		applications,
		newStubInternships(activeInternship(10)),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		&stubNotifications{},
	)

	_, err := svc.Apply(context.Background(), 3, &dto.SubmitApplicationRequest{InternshipID: 10})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assert.Len(t, applications.applications, 1)
}

func TestApplyRejectsInactiveInternship(t *testing.T) {
	internship := activeInternship(10)
	internship.IsActive = false
	svc := newApplicationServiceForTest(
		newStubApplications(),
		newStubInternships(internship),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		&stubNotifications{},
	)

	_, err := svc.Apply(context.Background(), 3, &dto.SubmitApplicationRequest{InternshipID: 10})
	assert.ErrorIs(t, err, apperrors.ErrInternshipInactive)
}

func TestApplyRejectsPassedDeadline(t *testing.T) {
	internship := activeInternship(10)
	deadline := time.Now().Add(-time.Hour)
	internship.ApplicationDeadline = &deadline
	svc := newApplicationServiceForTest(
		newStubApplications(),
		newStubInternships(internship),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		&stubNotifications{},
	)

	_, err := svc.Apply(context.Background(), 3, &dto.SubmitApplicationRequest{InternshipID: 10})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateStatusAcceptNotifiesStudent(t *testing.T) {
	notifications := &stubNotifications{}
	svc := newApplicationServiceForTest(
		newStubApplications(&models.Application{
			ID: 1, StudentID: 3, InternshipID: 10, Status: models.ApplicationPending,
			Internship: activeInternship(10),
		}),
		newStubInternships(activeInternship(10)),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		notifications,
	)

	application, err := svc.UpdateStatus(context.Background(), 1, &dto.UpdateApplicationStatusRequest{Status: "accepted"})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationAccepted, application.Status)
	require.NotNil(t, application.ReviewedAt)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, int64(7), notifications.created[0].UserID)
}

func TestUpdateStatusTerminalIsFinal(t *testing.T) {
	svc := newApplicationServiceForTest(
		newStubApplications(&models.Application{
			ID: 1, StudentID: 3, InternshipID: 10, Status: models.ApplicationAccepted,
		}),
		newStubInternships(activeInternship(10)),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		&stubNotifications{},
	)

	_, err := svc.UpdateStatus(context.Background(), 1, &dto.UpdateApplicationStatusRequest{Status: "rejected"})
	assert.ErrorIs(t, err, apperrors.ErrTransitionNotAllowed)
}

func TestWithdrawPendingApplication(t *testing.T) {
	svc := newApplicationServiceForTest(
		newStubApplications(&models.Application{
			ID: 1, StudentID: 3, InternshipID: 10, Status: models.ApplicationPending,
		}),
		newStubInternships(activeInternship(10)),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		&stubNotifications{},
	)

	application, err := svc.Withdraw(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationWithdrawn, application.Status)
}

func TestWithdrawRejectsForeignApplication(t *testing.T) {
	svc := newApplicationServiceForTest(
		newStubApplications(&models.Application{
			ID: 1, StudentID: 3, InternshipID: 10, Status: models.ApplicationPending,
		}),
		newStubInternships(activeInternship(10)),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		&stubNotifications{},
	)

	_, err := svc.Withdraw(context.Background(), 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
