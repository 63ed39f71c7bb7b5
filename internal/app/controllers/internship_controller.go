package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
	"github.com/edusphere/edusphere/internal/pkg/helpers"
)

// InternshipController handles internship posting operations
type InternshipController struct {
	internshipService *services.InternshipService
}

// NewInternshipController creates a new InternshipController
func NewInternshipController(internshipService *services.InternshipService) *InternshipController {
	return &InternshipController{internshipService: internshipService}
}

// CreateInternship handles internship posting creation
// @Summary Create an internship posting
// @Tags internships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInternshipRequest true "Internship information"
// @Success 201 {object} dto.APIResponse{data=models.Internship} "Internship created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /internships [post]
func (c *InternshipController) CreateInternship(ctx *gin.Context) {
	var req dto.CreateInternshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	internship, err := c.internshipService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(internship))
}

// GetInternship retrieves an internship by ID
// @Summary Get internship by ID
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse{data=models.Internship} "Internship retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id} [get]
func (c *InternshipController) GetInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	internship, err := c.internshipService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(internship))
}

// ListInternships retrieves internships with filtering and pagination
// @Summary List internships
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by type (onsite, remote, hybrid)"
// @Param location query string false "Filter by location"
// @Param company query string false "Filter by company name"
// @Param active query bool false "Filter by active status"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Internships retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /internships [get]
func (c *InternshipController) ListInternships(ctx *gin.Context) {
	var filter repositories.InternshipFilter
	if internshipType := ctx.Query("type"); internshipType != "" {
		filter.Type = &internshipType
	}
	if location := ctx.Query("location"); location != "" {
		filter.Location = &location
	}
	if company := ctx.Query("company"); company != "" {
		filter.Company = &company
	}
	if activeStr := ctx.Query("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			filter.IsActive = &active
		}
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	internships, total, err := c.internshipService.List(ctx, filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      internships,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateInternship applies a partial update to an internship posting
// @Summary Update an internship
// @Tags internships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body dto.UpdateInternshipRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Internship} "Internship updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id} [put]
func (c *InternshipController) UpdateInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInternshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	internship, err := c.internshipService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(internship))
}

// DeactivateInternship closes an internship posting to new applications
// @Summary Deactivate an internship
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse "Internship deactivated successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id}/deactivate [post]
func (c *InternshipController) DeactivateInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.internshipService.Deactivate(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Internship deactivated successfully", nil))
}

// DeleteInternship retires an internship posting. The posting is
// deactivated rather than removed so application history survives.
// @Summary Remove an internship posting
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 204 "Internship removed successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id} [delete]
func (c *InternshipController) DeleteInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.internshipService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
