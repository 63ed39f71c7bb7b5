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

func TestStudentDeactivateKeepsRecord(t *testing.T) {
	students := newStubStudents(&models.Student{ID: 3, UserID: 7, RollNumber: "CS2024001"})
	svc := NewStudentService(students, newStubUsers(), zerolog.Nop())

	require.NoError(t, svc.Deactivate(context.Background(), 3))

	student, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err, "the student record must survive deactivation")
	assert.Equal(t, "CS2024001", student.RollNumber)
	assert.Contains(t, students.deactivated, int64(3))
}

func TestStudentDeactivateUnknownStudent(t *testing.T) {
	svc := NewStudentService(newStubStudents(), newStubUsers(), zerolog.Nop())

	err := svc.Deactivate(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
