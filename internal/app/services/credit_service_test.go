package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

func newCreditServiceForTest(credits *stubCredits, students *stubStudents, notifications *stubNotifications) *CreditService {
	return NewCreditService(credits, students, notifications, zerolog.Nop())
}

func TestAwardAccumulatesBalance(t *testing.T) {
	credits := newStubCredits()
	notifications := &stubNotifications{}
	svc := newCreditServiceForTest(credits, newStubStudents(&models.Student{ID: 3, UserID: 7}), notifications)

	first, err := svc.Award(context.Background(), 3, 10, "certification added")
	require.NoError(t, err)
	assert.Equal(t, 10, first.CreditsEarned)

	second, err := svc.Award(context.Background(), 3, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 15, second.CreditsEarned)

	require.Len(t, notifications.created, 2)
	assert.Equal(t, int64(7), notifications.created[0].UserID)
}

func TestAwardRejectsNonPositiveAmount(t *testing.T) {
	svc := newCreditServiceForTest(newStubCredits(), newStubStudents(&models.Student{ID: 3, UserID: 7}), &stubNotifications{})

	for _, amount := range []int{0, -5} {
		_, err := svc.Award(context.Background(), 3, amount, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCreditAmount, "amount %d", amount)
	}
}

func TestAwardUnknownStudent(t *testing.T) {
	svc := newCreditServiceForTest(newStubCredits(), newStubStudents(), &stubNotifications{})

	_, err := svc.Award(context.Background(), 42, 10, "")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestGetBalanceStartsAtZero(t *testing.T) {
	svc := newCreditServiceForTest(newStubCredits(), newStubStudents(&models.Student{ID: 3, UserID: 7}), &stubNotifications{})

	credit, err := svc.GetBalance(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 0, credit.CreditsEarned)
	assert.NotZero(t, credit.ID, "first read persists a real ledger row")
	assert.Equal(t, int64(3), credit.StudentID)
}
