// Package controllers contains the HTTP handlers for the API. Controllers
// bind and validate requests, delegate to the service layer and translate
// results into the standard response envelope.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
)

// currentUserID reads the authenticated user ID from the request context.
// Writes a 401 response and returns false when the identity is missing.
func currentUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return 0, false
	}
	return userID, true
}

// parseIDParam parses a numeric path parameter. Writes a 400 response and
// returns false when the value is not a valid ID.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// currentStudent resolves the student record of the authenticated user.
// Writes the appropriate error response and returns false on failure.
func currentStudent(ctx *gin.Context, studentService *services.StudentService) (int64, bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return 0, false
	}

	student, err := studentService.GetByUserID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return student.ID, true
}
