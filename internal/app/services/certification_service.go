package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/filestorage"
	"github.com/edusphere/edusphere/internal/pkg/llm"
	"github.com/edusphere/edusphere/internal/pkg/pdftext"
)

// CertificationService handles manual and document-extracted certifications
type CertificationService struct {
	certRepo    *repositories.CertificationRepository
	studentRepo *repositories.StudentRepository
	storage     filestorage.FileStorage
	llmClient   *llm.Client
	logger      zerolog.Logger
}

// NewCertificationService creates a new CertificationService.
// llmClient may be nil; extraction then falls back to pattern matching only.
func NewCertificationService(
	certRepo *repositories.CertificationRepository,
	studentRepo *repositories.StudentRepository,
	storage filestorage.FileStorage,
	llmClient *llm.Client,
	logger zerolog.Logger,
) *CertificationService {
	return &CertificationService{
		certRepo:    certRepo,
		studentRepo: studentRepo,
		storage:     storage,
		llmClient:   llmClient,
		logger:      logger,
	}
}

// AddManual records a certification entered by the student
func (s *CertificationService) AddManual(ctx context.Context, studentID int64, req *dto.CreateCertificationRequest) (*models.Certification, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return nil, err
	}

	cert := &models.Certification{
		StudentID:     studentID,
		Title:         req.Title,
		Issuer:        optionalString(req.Issuer),
		IssueDate:     issueDate,
		CredentialID:  optionalString(req.CredentialID),
		CredentialURL: optionalString(req.CredentialURL),
		Source:        models.CertSourceManual,
	}

	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	return cert, nil
}

// AddFromDocument stores an uploaded certificate PDF and extracts its
// fields. The language model is tried first; pattern matching covers
// whatever it cannot recover.
func (s *CertificationService) AddFromDocument(ctx context.Context, studentID int64, fileHeader *multipart.FileHeader) (*models.Certification, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return nil, apperrors.NewBadRequestError("only PDF documents are supported")
	}

	documentURL, err := s.storage.SaveFileWithPath(fileHeader, "certifications")
	if err != nil {
		return nil, err
	}

	text, err := pdftext.ExtractText(s.storage.GetFullPath(documentURL))
	if err != nil {
		s.logger.Warn().Err(err).Str("document", documentURL).Msg("Failed to extract pdf text")
		return nil, apperrors.NewBadRequestError("could not read the uploaded document")
	}

	cert := s.extractFields(ctx, text)
	cert.StudentID = studentID
	cert.Source = models.CertSourceAI
	cert.DocumentURL = documentURL

	if cert.Title == "" {
		cert.Title = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	}

	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("certificationID", cert.ID).Int64("studentID", studentID).Msg("Certification extracted from document")
	return cert, nil
}

func (s *CertificationService) extractFields(ctx context.Context, text string) *models.Certification {
	cert := &models.Certification{}

	if s.llmClient != nil {
		fields, err := s.llmClient.ExtractCertification(ctx, text)
		if err == nil {
			cert.Title = fields.Title
			cert.Issuer = optionalString(fields.Issuer)
			cert.CredentialID = optionalString(fields.CredentialID)
			if t, perr := time.Parse(dateLayout, fields.IssueDate); perr == nil {
				cert.IssueDate = &t
			}
		} else {
			s.logger.Warn().Err(err).Msg("LLM extraction failed, falling back to pattern matching")
		}
	}

	if cert.Issuer == nil {
		cert.Issuer = optionalString(pdftext.ExtractIssuer(text))
	}
	if cert.CredentialID == nil {
		cert.CredentialID = optionalString(pdftext.ExtractCredentialID(text))
	}
	if cert.IssueDate == nil {
		cert.IssueDate = pdftext.ExtractIssueDate(text)
	}

	return cert
}

// Get retrieves a certification owned by the student
func (s *CertificationService) Get(ctx context.Context, id, studentID int64) (*models.Certification, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}
	return cert, nil
}

// ListByStudent retrieves a student's certifications
func (s *CertificationService) ListByStudent(ctx context.Context, studentID int64) ([]*models.Certification, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.certRepo.ListByStudent(ctx, studentID)
}

// Update applies a partial update to a certification owned by the student
func (s *CertificationService) Update(ctx context.Context, id, studentID int64, req *dto.UpdateCertificationRequest) (*models.Certification, error) {
	cert, err := s.Get(ctx, id, studentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		cert.Title = *req.Title
	}
	if req.Issuer != nil {
		cert.Issuer = optionalString(*req.Issuer)
	}
	if req.IssueDate != nil {
		issueDate, err := parseDate(*req.IssueDate)
		if err != nil {
			return nil, err
		}
		cert.IssueDate = issueDate
	}
	if req.CredentialID != nil {
		cert.CredentialID = optionalString(*req.CredentialID)
	}
	if req.CredentialURL != nil {
		cert.CredentialURL = optionalString(*req.CredentialURL)
	}

	if err := s.certRepo.Update(ctx, cert); err != nil {
		return nil, err
	}

	return cert, nil
}

// Delete removes a certification and its stored document
func (s *CertificationService) Delete(ctx context.Context, id, studentID int64) error {
	cert, err := s.Get(ctx, id, studentID)
	if err != nil {
		return err
	}

	if err := s.certRepo.Delete(ctx, id); err != nil {
		return err
	}

	if cert.DocumentURL != "" {
		if err := s.storage.DeleteFile(cert.DocumentURL); err != nil {
			s.logger.Warn().Err(err).Str("document", cert.DocumentURL).Msg("Failed to delete certificate document")
		}
	}

	return nil
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
