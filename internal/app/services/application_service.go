package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// ApplicationService handles the internship application lifecycle
type ApplicationService struct {
	applicationRepo      applicationStore
	internshipRepo       internshipStore
	studentRepo          studentStore
	notificationRepo     notificationStore
	allowReopenWithdrawn bool
	logger               zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo applicationStore,
	internshipRepo internshipStore,
	studentRepo studentStore,
	notificationRepo notificationStore,
	allowReopenWithdrawn bool,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo:      applicationRepo,
		internshipRepo:       internshipRepo,
		studentRepo:          studentRepo,
		notificationRepo:     notificationRepo,
		allowReopenWithdrawn: allowReopenWithdrawn,
		logger:               logger,
	}
}

// Apply submits an application on behalf of a student.
// The posting must be active and its deadline not passed.
func (s *ApplicationService) Apply(ctx context.Context, studentID int64, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	internship, err := s.internshipRepo.GetByID(ctx, req.InternshipID)
	if err != nil {
		return nil, err
	}
	if !internship.IsActive {
		return nil, apperrors.ErrInternshipInactive
	}
	if internship.ApplicationDeadline != nil && time.Now().After(*internship.ApplicationDeadline) {
		return nil, apperrors.NewBadRequestError("application deadline has passed")
	}

	exists, err := s.applicationRepo.Exists(ctx, studentID, req.InternshipID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing application: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	application := &models.Application{
		StudentID:    studentID,
		InternshipID: req.InternshipID,
		CoverLetter:  req.CoverLetter,
		ResumeURL:    req.ResumeURL,
		Status:       models.ApplicationPending,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", application.ID).
		Int64("studentID", studentID).
		Int64("internshipID", req.InternshipID).
		Msg("Application submitted")

	return s.applicationRepo.GetByID(ctx, application.ID)
}

// GetByID retrieves an application
func (s *ApplicationService) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	return s.applicationRepo.GetByID(ctx, id)
}

// ListByStudent retrieves a student's applications
func (s *ApplicationService) ListByStudent(ctx context.Context, studentID int64, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.Application, int64, error) {
	return s.applicationRepo.ListByStudent(ctx, studentID, status, offset, limit)
}

// ListByInternship retrieves applications for a posting
func (s *ApplicationService) ListByInternship(ctx context.Context, internshipID int64, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.Application, int64, error) {
	if _, err := s.internshipRepo.GetByID(ctx, internshipID); err != nil {
		return nil, 0, err
	}
	return s.applicationRepo.ListByInternship(ctx, internshipID, status, offset, limit)
}

// UpdateStatus transitions an application through its lifecycle.
// Accepted and rejected are terminal. A withdrawn application may return
// to pending only when reopening is enabled.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	newStatus := models.ApplicationStatus(req.Status)
	if !models.IsValidApplicationStatus(newStatus) {
		return nil, apperrors.ErrInvalidApplicationStatus
	}

	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(application.Status, newStatus, s.allowReopenWithdrawn) {
		return nil, apperrors.NewCustomError(apperrors.ErrTransitionNotAllowed,
			fmt.Sprintf("cannot transition application from %s to %s", application.Status, newStatus))
	}

	var rejectionReason *string
	if newStatus == models.ApplicationRejected {
		rejectionReason = req.RejectionReason
	}

	now := time.Now()
	var reviewedAt *time.Time
	if newStatus == models.ApplicationAccepted || newStatus == models.ApplicationRejected {
		reviewedAt = &now
	}

	if err := s.applicationRepo.UpdateStatus(ctx, id, newStatus, rejectionReason, reviewedAt); err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, application, newStatus)

	return s.applicationRepo.GetByID(ctx, id)
}

// Withdraw lets a student pull back their own pending application
func (s *ApplicationService) Withdraw(ctx context.Context, id, studentID int64) (*models.Application, error) {
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if application.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}

	if !models.CanTransition(application.Status, models.ApplicationWithdrawn, s.allowReopenWithdrawn) {
		return nil, apperrors.NewCustomError(apperrors.ErrTransitionNotAllowed,
			fmt.Sprintf("cannot withdraw application in status %s", application.Status))
	}

	if err := s.applicationRepo.UpdateStatus(ctx, id, models.ApplicationWithdrawn, nil, nil); err != nil {
		return nil, err
	}

	return s.applicationRepo.GetByID(ctx, id)
}

// notifyDecision tells the applicant about an accept or reject decision.
// Notification failures are logged, not surfaced; the decision already stands.
func (s *ApplicationService) notifyDecision(ctx context.Context, application *models.Application, status models.ApplicationStatus) {
	if status != models.ApplicationAccepted && status != models.ApplicationRejected {
		return
	}

	student, err := s.studentRepo.GetByID(ctx, application.StudentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", application.StudentID).Msg("Failed to load student for notification")
		return
	}

	title := "Application update"
	message := fmt.Sprintf("Your application to %s has been %s.", application.Internship.Title, status)

	notification := &models.Notification{
		UserID:  student.UserID,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("userID", student.UserID).Msg("Failed to create decision notification")
	}
}
