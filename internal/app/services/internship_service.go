package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// InternshipService handles internship posting operations
type InternshipService struct {
	internshipRepo internshipStore
	logger         zerolog.Logger
}

// NewInternshipService creates a new InternshipService
func NewInternshipService(internshipRepo internshipStore, logger zerolog.Logger) *InternshipService {
	return &InternshipService{
		internshipRepo: internshipRepo,
		logger:         logger,
	}
}

// Create publishes a new internship posting
func (s *InternshipService) Create(ctx context.Context, req *dto.CreateInternshipRequest) (*models.Internship, error) {
	if !models.IsValidInternshipType(models.InternshipType(req.Type)) {
		return nil, apperrors.NewBadRequestError("invalid internship type")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	deadline, err := parseDate(req.ApplicationDeadline)
	if err != nil {
		return nil, err
	}

	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, apperrors.NewBadRequestError("end date cannot precede start date")
	}

	internship := &models.Internship{
		Title:               req.Title,
		Description:         req.Description,
		CompanyName:         req.CompanyName,
		Location:            req.Location,
		Type:                models.InternshipType(req.Type),
		Duration:            req.Duration,
		Stipend:             req.Stipend,
		RequiredSkills:      req.RequiredSkills,
		StartDate:           startDate,
		EndDate:             endDate,
		ApplicationDeadline: deadline,
		PostedBy:            req.PostedBy,
		IsActive:            true,
	}

	if err := s.internshipRepo.Create(ctx, internship); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("internshipID", internship.ID).Str("title", internship.Title).Msg("Internship posted")
	return internship, nil
}

// GetByID retrieves an internship posting
func (s *InternshipService) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	return s.internshipRepo.GetByID(ctx, id)
}

// List retrieves internships matching the filter
func (s *InternshipService) List(ctx context.Context, filter repositories.InternshipFilter, offset uint64, limit int) ([]*models.Internship, int64, error) {
	return s.internshipRepo.List(ctx, filter, offset, limit)
}

// Update applies a partial update to an internship posting
func (s *InternshipService) Update(ctx context.Context, id int64, req *dto.UpdateInternshipRequest) (*models.Internship, error) {
	internship, err := s.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		internship.Title = *req.Title
	}
	if req.Description != nil {
		internship.Description = *req.Description
	}
	if req.CompanyName != nil {
		internship.CompanyName = *req.CompanyName
	}
	if req.Location != nil {
		internship.Location = *req.Location
	}
	if req.Type != nil {
		if !models.IsValidInternshipType(models.InternshipType(*req.Type)) {
			return nil, apperrors.NewBadRequestError("invalid internship type")
		}
		internship.Type = models.InternshipType(*req.Type)
	}
	if req.Duration != nil {
		internship.Duration = *req.Duration
	}
	if req.Stipend != nil {
		internship.Stipend = *req.Stipend
	}
	if req.RequiredSkills != nil {
		internship.RequiredSkills = req.RequiredSkills
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		internship.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		internship.EndDate = endDate
	}
	if req.ApplicationDeadline != nil {
		deadline, err := parseDate(*req.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		internship.ApplicationDeadline = deadline
	}
	if req.IsActive != nil {
		internship.IsActive = *req.IsActive
	}

	if internship.StartDate != nil && internship.EndDate != nil && internship.EndDate.Before(*internship.StartDate) {
		return nil, apperrors.NewBadRequestError("end date cannot precede start date")
	}

	if err := s.internshipRepo.Update(ctx, internship); err != nil {
		return nil, err
	}

	return s.internshipRepo.GetByID(ctx, id)
}

// Deactivate closes an internship to new applications
func (s *InternshipService) Deactivate(ctx context.Context, id int64) error {
	return s.internshipRepo.SetActive(ctx, id, false)
}

// Delete retires an internship posting. Postings are deactivated, never
// physically removed, so application history stays intact.
func (s *InternshipService) Delete(ctx context.Context, id int64) error {
	return s.internshipRepo.Delete(ctx, id)
}
