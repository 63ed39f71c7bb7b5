package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/filestorage"
	"github.com/edusphere/edusphere/internal/pkg/llm"
)

// CVService generates CVs from a student's profile, certifications and projects
type CVService struct {
	portfolioRepo *repositories.PortfolioRepository
	certRepo      *repositories.CertificationRepository
	studentRepo   *repositories.StudentRepository
	storage       filestorage.FileStorage
	llmClient     *llm.Client
	logger        zerolog.Logger
}

// NewCVService creates a new CVService
func NewCVService(
	portfolioRepo *repositories.PortfolioRepository,
	certRepo *repositories.CertificationRepository,
	studentRepo *repositories.StudentRepository,
	storage filestorage.FileStorage,
	llmClient *llm.Client,
	logger zerolog.Logger,
) *CVService {
	return &CVService{
		portfolioRepo: portfolioRepo,
		certRepo:      certRepo,
		studentRepo:   studentRepo,
		storage:       storage,
		llmClient:     llmClient,
		logger:        logger,
	}
}

// Generate renders a CV for a student and stores the result
func (s *CVService) Generate(ctx context.Context, studentID int64, req *dto.GenerateCVRequest) (*models.CVGeneration, error) {
	if s.llmClient == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "cv generation is not configured")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	input := llm.CVInput{
		Name:         student.User.Name,
		Email:        student.User.Email,
		Department:   student.Department,
		Semester:     student.Semester,
		CGPA:         student.CGPA,
		TemplateName: req.TemplateName,
		Format:       req.Format,
	}
	if input.TemplateName == "" {
		input.TemplateName = "modern"
	}
	if input.Format == "" {
		input.Format = "markdown"
	}

	profile, err := s.studentRepo.GetProfile(ctx, studentID)
	if err == nil {
		input.Bio = profile.Bio
		input.Skills = profile.Skills
		input.Interests = profile.Interests
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	certs, err := s.certRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for _, cert := range certs {
		entry := cert.Title
		if cert.Issuer != nil {
			entry += " (" + *cert.Issuer + ")"
		}
		input.Certifications = append(input.Certifications, entry)
	}

	projects, err := s.portfolioRepo.ListProjectsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for _, project := range projects {
		entry := project.Title
		if project.Description != "" {
			entry += ": " + project.Description
		}
		input.Projects = append(input.Projects, entry)
	}

	content, err := s.llmClient.GenerateCV(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error generating cv content: %w", err)
	}

	ext := ".md"
	if input.Format == "html" {
		ext = ".html"
	}
	fileURL, err := s.storage.SaveBytes([]byte(content), "cv", fmt.Sprintf("cv_%d%s", studentID, ext))
	if err != nil {
		return nil, err
	}

	cv := &models.CVGeneration{
		StudentID:    studentID,
		TemplateName: input.TemplateName,
		FileURL:      fileURL,
		Format:       input.Format,
	}
	if err := s.portfolioRepo.CreateCV(ctx, cv); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Str("template", cv.TemplateName).Msg("CV generated")
	return cv, nil
}

// List retrieves a student's generated CVs
func (s *CVService) List(ctx context.Context, studentID int64) ([]*models.CVGeneration, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.portfolioRepo.ListCVsByStudent(ctx, studentID)
}

// GetLatest retrieves the most recent CV for a student
func (s *CVService) GetLatest(ctx context.Context, studentID int64) (*models.CVGeneration, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.portfolioRepo.GetLatestCV(ctx, studentID)
}
