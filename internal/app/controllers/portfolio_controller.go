package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
)

// PortfolioController handles certification, CV and project operations
type PortfolioController struct {
	certificationService *services.CertificationService
	cvService            *services.CVService
	githubService        *services.GitHubService
	studentService       *services.StudentService
}

// NewPortfolioController creates a new PortfolioController
func NewPortfolioController(
	certificationService *services.CertificationService,
	cvService *services.CVService,
	githubService *services.GitHubService,
	studentService *services.StudentService,
) *PortfolioController {
	return &PortfolioController{
		certificationService: certificationService,
		cvService:            cvService,
		githubService:        githubService,
		studentService:       studentService,
	}
}

// AddCertification records a certification entered manually
// @Summary Add a certification
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCertificationRequest true "Certification information"
// @Success 201 {object} dto.APIResponse{data=models.Certification} "Certification added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /certifications [post]
func (c *PortfolioController) AddCertification(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	var req dto.CreateCertificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	certification, err := c.certificationService.AddManual(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(certification))
}

// UploadCertification extracts a certification from an uploaded PDF
// @Summary Upload a certification document
// @Description Stores the PDF and extracts title, issuer, date and credential ID from it
// @Tags portfolio
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Certification PDF"
// @Success 201 {object} dto.APIResponse{data=models.Certification} "Certification extracted successfully"
// @Failure 400 {object} dto.ErrorResponse "File missing or not a PDF"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /certifications/upload [post]
func (c *PortfolioController) UploadCertification(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required")
		errorDetail = errorDetail.WithDetails("Attach the certification PDF as the file form field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	certification, err := c.certificationService.AddFromDocument(ctx, studentID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(certification))
}

// GetCertification retrieves one of the authenticated student's certifications
// @Summary Get certification by ID
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certification ID"
// @Success 200 {object} dto.APIResponse{data=models.Certification} "Certification retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Certification belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Certification not found"
// @Router /certifications/{id} [get]
func (c *PortfolioController) GetCertification(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	certification, err := c.certificationService.Get(ctx, id, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(certification))
}

// ListCertifications retrieves the authenticated student's certifications
// @Summary List certifications
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Certification} "Certifications retrieved successfully"
// @Router /certifications [get]
func (c *PortfolioController) ListCertifications(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	certifications, err := c.certificationService.ListByStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(certifications))
}

// UpdateCertification applies a partial update to a certification
// @Summary Update a certification
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certification ID"
// @Param request body dto.UpdateCertificationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Certification} "Certification updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Certification belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Certification not found"
// @Router /certifications/{id} [put]
func (c *PortfolioController) UpdateCertification(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	var req dto.UpdateCertificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	certification, err := c.certificationService.Update(ctx, id, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(certification))
}

// DeleteCertification removes a certification and its stored document
// @Summary Delete a certification
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certification ID"
// @Success 204 "Certification deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Certification belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Certification not found"
// @Router /certifications/{id} [delete]
func (c *PortfolioController) DeleteCertification(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	if err := c.certificationService.Delete(ctx, id, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GenerateCV produces a CV from the authenticated student's records
// @Summary Generate a CV
// @Description Builds a CV from the student's profile, certifications and projects
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateCVRequest true "Template and format"
// @Success 201 {object} dto.APIResponse{data=models.CVGeneration} "CV generated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Generation failed"
// @Router /cv/generate [post]
func (c *PortfolioController) GenerateCV(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	var req dto.GenerateCVRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	cv, err := c.cvService.Generate(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(cv))
}

// ListCVs retrieves the authenticated student's generated CVs
// @Summary List generated CVs
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CVGeneration} "CVs retrieved successfully"
// @Router /cv [get]
func (c *PortfolioController) ListCVs(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	cvs, err := c.cvService.List(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(cvs))
}

// GetLatestCV retrieves the authenticated student's most recent CV
// @Summary Get latest CV
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.CVGeneration} "CV retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "No CV generated yet"
// @Router /cv/latest [get]
func (c *PortfolioController) GetLatestCV(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	cv, err := c.cvService.GetLatest(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(cv))
}

// GitHubAuthorize returns the GitHub OAuth authorization URL
// @Summary Start GitHub authorization
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Authorization URL returned"
// @Router /github/authorize [get]
func (c *PortfolioController) GitHubAuthorize(ctx *gin.Context) {
	if _, ok := currentUserID(ctx); !ok {
		return
	}

	state := uuid.New().String()
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"authorizeUrl": c.githubService.AuthorizeURL(state),
		"state":        state,
	}))
}

// ConnectGitHub links a GitHub account using an OAuth code
// @Summary Connect GitHub account
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ConnectGitHubRequest true "OAuth authorization code"
// @Success 200 {object} dto.APIResponse{data=models.User} "GitHub account connected"
// @Failure 400 {object} dto.ErrorResponse "Invalid authorization code"
// @Router /github/connect [post]
func (c *PortfolioController) ConnectGitHub(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ConnectGitHubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.githubService.Connect(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// DisconnectGitHub unlinks the authenticated user's GitHub account
// @Summary Disconnect GitHub account
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "GitHub account disconnected"
// @Failure 400 {object} dto.ErrorResponse "GitHub account not connected"
// @Router /github/disconnect [post]
func (c *PortfolioController) DisconnectGitHub(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.githubService.Disconnect(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("GitHub account disconnected", nil))
}

// SyncGitHub imports the authenticated student's GitHub repositories
// @Summary Sync GitHub repositories
// @Description Imports the top starred repositories as portfolio projects
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.GitHubSyncResponse} "Repositories synced successfully"
// @Failure 400 {object} dto.ErrorResponse "GitHub account not connected"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /github/sync [post]
func (c *PortfolioController) SyncGitHub(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.githubService.Sync(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// AddProject records a project entered manually
// @Summary Add a project
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project information"
// @Success 201 {object} dto.APIResponse{data=models.PortfolioProject} "Project added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /projects [post]
func (c *PortfolioController) AddProject(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	project, err := c.githubService.AddProject(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(project))
}

// ListProjects retrieves the authenticated student's projects
// @Summary List projects
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PortfolioProject} "Projects retrieved successfully"
// @Router /projects [get]
func (c *PortfolioController) ListProjects(ctx *gin.Context) {
	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	projects, err := c.githubService.ListProjects(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(projects))
}

// DeleteProject removes one of the authenticated student's projects
// @Summary Delete a project
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 204 "Project deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [delete]
func (c *PortfolioController) DeleteProject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	studentID, ok := currentStudent(ctx, c.studentService)
	if !ok {
		return
	}

	if err := c.githubService.DeleteProject(ctx, id, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
