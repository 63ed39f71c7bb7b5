package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

const dateLayout = "2006-01-02"

// StudentService handles student records and extended profiles
type StudentService struct {
	studentRepo studentStore
	userRepo    userStore
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo studentStore,
	userRepo userStore,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value))
	}
	return &t, nil
}

// Create registers a student record for an existing user account
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	exists, err := s.studentRepo.RollNumberExists(ctx, req.RollNumber)
	if err != nil {
		return nil, fmt.Errorf("error checking roll number: %w", err)
	}
	if exists {
		return nil, apperrors.ErrRollNumberExists
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		UserID:      req.UserID,
		RollNumber:  req.RollNumber,
		Department:  req.Department,
		Semester:    req.Semester,
		CGPA:        req.CGPA,
		DateOfBirth: dob,
		Phone:       req.Phone,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("rollNumber", student.RollNumber).Msg("Student created")
	return s.studentRepo.GetByID(ctx, student.ID)
}

// GetByID retrieves a student record
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetByUserID retrieves the student record owned by a user
func (s *StudentService) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// List retrieves students matching the filter
func (s *StudentService) List(ctx context.Context, filter repositories.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	return s.studentRepo.List(ctx, filter, offset, limit)
}

// Update applies a partial update to a student record
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Department != nil {
		student.Department = *req.Department
	}
	if req.Semester != nil {
		student.Semester = *req.Semester
	}
	if req.CGPA != nil {
		student.CGPA = *req.CGPA
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		student.DateOfBirth = dob
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, id)
}

// Approve marks a student record as approved
func (s *StudentService) Approve(ctx context.Context, id int64) error {
	if err := s.studentRepo.SetApproved(ctx, id, true); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student approved")
	return nil
}

// Deactivate disables the account behind a student record. The record
// and its applications, credits and reviews are kept.
func (s *StudentService) Deactivate(ctx context.Context, id int64) error {
	if err := s.studentRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student account deactivated")
	return nil
}

// GetProfile retrieves the extended profile of a student
func (s *StudentService) GetProfile(ctx context.Context, studentID int64) (*models.Profile, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.studentRepo.GetProfile(ctx, studentID)
}

// UpsertProfile creates or replaces the extended profile of a student
func (s *StudentService) UpsertProfile(ctx context.Context, studentID int64, req *dto.UpsertProfileRequest) (*models.Profile, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	dob, err := parseDate(req.DOB)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		StudentID: studentID,
		Bio:       req.Bio,
		Gender:    req.Gender,
		DOB:       dob,
		AvatarURL: req.AvatarURL,
		GitHub:    req.GitHub,
		LinkedIn:  req.LinkedIn,
		Skills:    req.Skills,
		Interests: req.Interests,
		ResumeURL: req.ResumeURL,
	}

	if err := s.studentRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
