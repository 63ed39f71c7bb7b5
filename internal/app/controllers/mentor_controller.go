package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
	"github.com/edusphere/edusphere/internal/pkg/helpers"
)

// MentorController handles mentor, session and review operations
type MentorController struct {
	mentorService  *services.MentorService
	studentService *services.StudentService
}

// NewMentorController creates a new MentorController
func NewMentorController(mentorService *services.MentorService, studentService *services.StudentService) *MentorController {
	return &MentorController{
		mentorService:  mentorService,
		studentService: studentService,
	}
}

// RegisterMentor registers a user as a mentor
// @Summary Register a mentor
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterMentorRequest true "Mentor information"
// @Success 201 {object} dto.APIResponse{data=models.Mentor} "Mentor registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered as mentor"
// @Router /mentors [post]
func (c *MentorController) RegisterMentor(ctx *gin.Context) {
	var req dto.RegisterMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	mentor, err := c.mentorService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(mentor))
}

// GetMentor retrieves a mentor by ID
// @Summary Get mentor by ID
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentor ID"
// @Success 200 {object} dto.APIResponse{data=models.Mentor} "Mentor retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/{id} [get]
func (c *MentorController) GetMentor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	mentor, err := c.mentorService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mentor))
}

// ListMentors retrieves mentors ordered by rating
// @Summary List mentors
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param expertise query string false "Filter by expertise"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Mentors retrieved successfully"
// @Router /mentors [get]
func (c *MentorController) ListMentors(ctx *gin.Context) {
	var expertise *string
	if value := ctx.Query("expertise"); value != "" {
		expertise = &value
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	mentors, total, err := c.mentorService.List(ctx, expertise, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      mentors,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// BookSession books a mentorship session for the authenticated student
// @Summary Book a session
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BookSessionRequest true "Session information"
// @Success 201 {object} dto.APIResponse{data=models.MentorSession} "Session booked successfully"
// @Failure 400 {object} dto.ErrorResponse "Scheduled time is invalid or in the past"
// @Failure 404 {object} dto.ErrorResponse "Mentor or student not found"
// @Router /mentors/sessions [post]
func (c *MentorController) BookSession(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	var req dto.BookSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	session, err := c.mentorService.BookSession(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(session))
}

// GetSession retrieves a session by ID
// @Summary Get session by ID
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.MentorSession} "Session retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /mentors/sessions/{id} [get]
func (c *MentorController) GetSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	session, err := c.mentorService.GetSession(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// ListMySessions retrieves the authenticated student's sessions
// @Summary List own sessions
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Sessions retrieved successfully"
// @Router /mentors/sessions/me [get]
func (c *MentorController) ListMySessions(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	sessions, total, err := c.mentorService.ListSessionsByStudent(ctx, studentID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      sessions,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// ListMentorSessions retrieves a mentor's sessions
// @Summary List mentor sessions
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentor ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Sessions retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/{id}/sessions [get]
func (c *MentorController) ListMentorSessions(ctx *gin.Context) {
	mentorID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	sessions, total, err := c.mentorService.ListSessionsByMentor(ctx, mentorID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      sessions,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateSessionStatus completes or cancels a scheduled session
// @Summary Update session status
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.UpdateSessionStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.MentorSession} "Session updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid status change"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /mentors/sessions/{id}/status [put]
func (c *MentorController) UpdateSessionStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSessionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	session, err := c.mentorService.UpdateSessionStatus(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// AddReview submits a mentor review from the authenticated student
// @Summary Review a mentor
// @Description Records a review and recomputes the mentor's aggregate rating
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddReviewRequest true "Review information"
// @Success 201 {object} dto.APIResponse{data=models.MentorReview} "Review added successfully"
// @Failure 400 {object} dto.ErrorResponse "Rating out of range"
// @Failure 404 {object} dto.ErrorResponse "Mentor or student not found"
// @Router /mentors/reviews [post]
func (c *MentorController) AddReview(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	var req dto.AddReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	review, err := c.mentorService.AddReview(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(review))
}

// ListReviews retrieves a mentor's reviews
// @Summary List mentor reviews
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentor ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Reviews retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/{id}/reviews [get]
func (c *MentorController) ListReviews(ctx *gin.Context) {
	mentorID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	reviews, total, err := c.mentorService.ListReviews(ctx, mentorID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      reviews,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}
