package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/edusphere/internal/app/models"
)

func TestDeleteRetiresPostingWithoutRemovingIt(t *testing.T) {
	internships := newStubInternships(&models.Internship{ID: 10, Title: "Backend Intern", IsActive: true})
	svc := NewInternshipService(internships, zerolog.Nop())

	require.NoError(t, svc.Delete(context.Background(), 10))

	internship, err := svc.GetByID(context.Background(), 10)
	require.NoError(t, err, "the posting row must survive a delete")
	assert.False(t, internship.IsActive)
}

func TestDeactivateClosesPosting(t *testing.T) {
	internships := newStubInternships(&models.Internship{ID: 10, Title: "Backend Intern", IsActive: true})
	svc := NewInternshipService(internships, zerolog.Nop())

	require.NoError(t, svc.Deactivate(context.Background(), 10))

	internship, err := svc.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.False(t, internship.IsActive)
}
