package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
)

// CreditController handles credit ledger operations
type CreditController struct {
	creditService  *services.CreditService
	studentService *services.StudentService
}

// NewCreditController creates a new CreditController
func NewCreditController(creditService *services.CreditService, studentService *services.StudentService) *CreditController {
	return &CreditController{
		creditService:  creditService,
		studentService: studentService,
	}
}

// AwardCredits adds credits to a student's balance
// @Summary Award credits
// @Tags credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddCreditsRequest true "Credit award information"
// @Success 200 {object} dto.APIResponse{data=models.Credit} "Credits awarded successfully"
// @Failure 400 {object} dto.ErrorResponse "Amount must be positive"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /credits [post]
func (c *CreditController) AwardCredits(ctx *gin.Context) {
	var req dto.AddCreditsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	credit, err := c.creditService.Award(ctx, req.StudentID, req.Amount, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(credit))
}

// GetMyBalance retrieves the authenticated student's credit balance
// @Summary Get own credit balance
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Credit} "Balance retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /credits/me [get]
func (c *CreditController) GetMyBalance(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	credit, err := c.creditService.GetBalance(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(credit))
}

// GetStudentBalance retrieves a student's credit balance
// @Summary Get student credit balance
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Credit} "Balance retrieved successfully"
// @Router /credits/students/{id} [get]
func (c *CreditController) GetStudentBalance(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	credit, err := c.creditService.GetBalance(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(credit))
}

// Leaderboard retrieves the top students by credits earned
// @Summary Credit leaderboard
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Credit} "Leaderboard retrieved successfully"
// @Router /credits/leaderboard [get]
func (c *CreditController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.creditService.Leaderboard(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries))
}
