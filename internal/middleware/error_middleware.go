package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to standard API responses.
// Unknown errors always collapse to an opaque 500 so internals never leak.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		c.JSON(status, dto.APIResponse{
			Error: dto.NewErrorDetail(code, message),
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(401, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(401, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(401, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(401, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(401, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(403, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(403, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrNotParticipant):
		respond(403, dto.ErrorCodeForbidden, "Not a participant of this chat room")

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrInternshipNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrMentorNotFound),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound),
		errors.Is(err, apperrors.ErrAnnouncementNotFound),
		errors.Is(err, apperrors.ErrChatRoomNotFound),
		errors.Is(err, apperrors.ErrForumNotFound),
		errors.Is(err, apperrors.ErrPostNotFound),
		errors.Is(err, apperrors.ErrMessageNotFound),
		errors.Is(err, apperrors.ErrCertificationNotFound),
		errors.Is(err, apperrors.ErrCVNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrRollNumberExists),
		errors.Is(err, apperrors.ErrStudentProfileExists),
		errors.Is(err, apperrors.ErrAlreadyApplied),
		errors.Is(err, apperrors.ErrAlreadyMentor),
		errors.Is(err, apperrors.ErrAlreadyReviewed),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		respond(409, dto.ErrorCodeResourceAlreadyExists, err.Error())

	case errors.Is(err, apperrors.ErrTransitionNotAllowed):
		respond(409, dto.ErrorCodeConflict, "Status transition not allowed")

	case errors.Is(err, apperrors.ErrInternshipInactive),
		errors.Is(err, apperrors.ErrInvalidApplicationStatus),
		errors.Is(err, apperrors.ErrInvalidSessionStatus),
		errors.Is(err, apperrors.ErrInvalidRating),
		errors.Is(err, apperrors.ErrInvalidCreditAmount),
		errors.Is(err, apperrors.ErrStudentProfileMissing),
		errors.Is(err, apperrors.ErrGitHubNotConnected),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(400, dto.ErrorCodeValidationFailed, err.Error())

	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(400, dto.ErrorCodeValidationFailed, "Validation failed")

	default:
		// Never echo internal error text back to the client
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// HandleValidationError formats request binding failures into a 400 response
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
	errorDetail = errorDetail.WithDetails(err.Error())
	c.JSON(400, dto.NewErrorResponse(errorDetail))
}
