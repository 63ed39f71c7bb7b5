package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidApplicationStatus(t *testing.T) {
	assert.True(t, IsValidApplicationStatus(ApplicationPending))
	assert.True(t, IsValidApplicationStatus(ApplicationAccepted))
	assert.True(t, IsValidApplicationStatus(ApplicationRejected))
	assert.True(t, IsValidApplicationStatus(ApplicationWithdrawn))

	assert.False(t, IsValidApplicationStatus("approved"))
	assert.False(t, IsValidApplicationStatus(""))
	assert.False(t, IsValidApplicationStatus("PENDING"))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"pending to accepted", ApplicationPending, ApplicationAccepted, true},
		{"pending to rejected", ApplicationPending, ApplicationRejected, true},
		{"pending to withdrawn", ApplicationPending, ApplicationWithdrawn, true},
		{"accepted is terminal", ApplicationAccepted, ApplicationPending, false},
		{"accepted to rejected", ApplicationAccepted, ApplicationRejected, false},
		{"rejected is terminal", ApplicationRejected, ApplicationPending, false},
		{"withdrawn to pending blocked by default", ApplicationWithdrawn, ApplicationPending, false},
		{"withdrawn to accepted", ApplicationWithdrawn, ApplicationAccepted, false},
		{"same status", ApplicationPending, ApplicationPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to, false))
		})
	}
}

func TestCanTransitionReopenWithdrawn(t *testing.T) {
	assert.True(t, CanTransition(ApplicationWithdrawn, ApplicationPending, true))

	// Reopening only applies to the withdrawn -> pending edge.
	assert.False(t, CanTransition(ApplicationWithdrawn, ApplicationAccepted, true))
	assert.False(t, CanTransition(ApplicationRejected, ApplicationPending, true))
	assert.False(t, CanTransition(ApplicationAccepted, ApplicationPending, true))
}
