package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrStudentProfileExists  = errors.New("student profile already exists")
	ErrRollNumberExists      = errors.New("roll number already exists")
	ErrStudentProfileMissing = errors.New("student profile required")
)

// Internship errors
var (
	ErrInternshipNotFound = errors.New("internship not found")
	ErrInternshipInactive = errors.New("internship is not accepting applications")
)

// Application errors
var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrAlreadyApplied           = errors.New("already applied to this internship")
	ErrInvalidApplicationStatus = errors.New("invalid application status")
	ErrTransitionNotAllowed     = errors.New("status transition not allowed")
)

// Mentor errors
var (
	ErrMentorNotFound        = errors.New("mentor not found")
	ErrAlreadyMentor         = errors.New("already registered as mentor")
	ErrAlreadyReviewed       = errors.New("student has already reviewed this mentor")
	ErrSessionNotFound       = errors.New("session not found")
	ErrInvalidSessionStatus  = errors.New("invalid session status")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrInvalidCreditAmount   = errors.New("credit amount must be positive")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrAnnouncementNotFound  = errors.New("announcement not found")
)

// Chat and forum errors
var (
	ErrChatRoomNotFound = errors.New("chat room not found")
	ErrNotParticipant   = errors.New("not a participant of this chat room")
	ErrForumNotFound    = errors.New("forum not found")
	ErrPostNotFound     = errors.New("forum post not found")
	ErrMessageNotFound  = errors.New("message not found")
)

// Portfolio errors
var (
	ErrCertificationNotFound = errors.New("certification not found")
	ErrCVNotFound            = errors.New("cv not found")
	ErrGitHubNotConnected    = errors.New("github account not connected")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
