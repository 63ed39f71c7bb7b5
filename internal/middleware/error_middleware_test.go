package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

func performErrorRequest(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"not a participant", apperrors.ErrNotParticipant, http.StatusForbidden},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"internship not found", apperrors.ErrInternshipNotFound, http.StatusNotFound},
		{"already applied", apperrors.ErrAlreadyApplied, http.StatusConflict},
		{"already reviewed", apperrors.ErrAlreadyReviewed, http.StatusConflict},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden},
		{"transition not allowed", apperrors.ErrTransitionNotAllowed, http.StatusConflict},
		{"internship inactive", apperrors.ErrInternshipInactive, http.StatusBadRequest},
		{"invalid rating", apperrors.ErrInvalidRating, http.StatusBadRequest},
		{"github not connected", apperrors.ErrGitHubNotConnected, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := performErrorRequest(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
		})
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("loading application: %w", apperrors.ErrApplicationNotFound)

	w, resp := performErrorRequest(t, wrapped)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
}

func TestHandleAPIErrorCustomMessage(t *testing.T) {
	err := apperrors.NewForbiddenError("only the session owner may cancel it")

	w, resp := performErrorRequest(t, err)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "only the session owner may cancel it", resp.Error.Message)
}

func TestHandleAPIErrorUnknownErrorIsOpaque(t *testing.T) {
	w, resp := performErrorRequest(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection refused")
}
