package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
	"github.com/edusphere/edusphere/internal/pkg/helpers"
)

// ApplicationController handles internship application operations
type ApplicationController struct {
	applicationService *services.ApplicationService
	studentService     *services.StudentService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, studentService *services.StudentService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		studentService:     studentService,
	}
}

// statusFilter parses the optional status query parameter
func statusFilter(ctx *gin.Context) (*models.ApplicationStatus, bool) {
	statusStr := ctx.Query("status")
	if statusStr == "" {
		return nil, true
	}

	status := models.ApplicationStatus(statusStr)
	if !models.IsValidApplicationStatus(status) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
		errorDetail = errorDetail.WithDetails("status must be one of: pending, accepted, rejected, withdrawn")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &status, true
}

// Apply submits an application to an internship
// @Summary Apply to an internship
// @Description Submits an application for the authenticated student
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitApplicationRequest true "Application information"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Application submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Internship inactive or deadline passed"
// @Failure 404 {object} dto.ErrorResponse "Internship or student not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	application, err := c.applicationService.Apply(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(application))
}

// GetApplication retrieves an application by ID
// @Summary Get application by ID
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := c.applicationService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application))
}

// ListMyApplications retrieves the authenticated student's applications
// @Summary List own applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, accepted, rejected, withdrawn)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Applications retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /applications/me [get]
func (c *ApplicationController) ListMyApplications(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	status, ok := statusFilter(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	applications, total, err := c.applicationService.ListByStudent(ctx, studentID, status, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      applications,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// ListInternshipApplications retrieves the applications for an internship
// @Summary List applications for an internship
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Applications retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /internships/{id}/applications [get]
func (c *ApplicationController) ListInternshipApplications(ctx *gin.Context) {
	internshipID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, ok := statusFilter(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	applications, total, err := c.applicationService.ListByInternship(ctx, internshipID, status, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      applications,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateApplicationStatus moves an application to a new status
// @Summary Update application status
// @Description Applies a status transition and notifies the student of the decision
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Status transition not allowed"
// @Router /applications/{id}/status [put]
func (c *ApplicationController) UpdateApplicationStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	application, err := c.applicationService.UpdateStatus(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application))
}

// WithdrawApplication withdraws the authenticated student's application
// @Summary Withdraw an application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application withdrawn successfully"
// @Failure 403 {object} dto.ErrorResponse "Application belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Status transition not allowed"
// @Router /applications/{id}/withdraw [post]
func (c *ApplicationController) WithdrawApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	application, err := c.applicationService.Withdraw(ctx, id, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application))
}
