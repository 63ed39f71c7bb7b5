package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/dberrors"
)

// ApplicationRepository handles database operations for internship applications
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new application. A student can only apply once per internship.
func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	query := `
		INSERT INTO applications (student_id, internship_id, cover_letter, resume_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, applied_at
	`

	err := r.db.QueryRow(ctx, query,
		application.StudentID,
		application.InternshipID,
		application.CoverLetter,
		application.ResumeURL,
		application.Status,
	).Scan(&application.ID, &application.AppliedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInternshipNotFound
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetByID retrieves an application with its internship joined in
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `
		SELECT a.id, a.student_id, a.internship_id, a.cover_letter, a.resume_url,
		       a.status, a.rejection_reason, a.applied_at, a.reviewed_at,
		       i.id, i.title, i.company_name, i.location, i.type, i.is_active
		FROM applications a
		JOIN internships i ON a.internship_id = i.id
		WHERE a.id = $1
	`

	var application models.Application
	var internship models.Internship
	err := r.db.QueryRow(ctx, query, id).Scan(
		&application.ID,
		&application.StudentID,
		&application.InternshipID,
		&application.CoverLetter,
		&application.ResumeURL,
		&application.Status,
		&application.RejectionReason,
		&application.AppliedAt,
		&application.ReviewedAt,
		&internship.ID,
		&internship.Title,
		&internship.CompanyName,
		&internship.Location,
		&internship.Type,
		&internship.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	application.Internship = &internship
	return &application, nil
}

// Exists checks whether a student already applied to an internship
func (r *ApplicationRepository) Exists(ctx context.Context, studentID, internshipID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND internship_id = $2)`,
		studentID, internshipID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}
	return exists, nil
}

// ListByStudent retrieves a student's applications, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.Application, int64, error) {
	where := squirrel.Eq{"a.student_id": studentID}
	if status != nil {
		where["a.status"] = *status
	}
	return r.list(ctx, where, offset, limit)
}

// ListByInternship retrieves applications to a posting, newest first
func (r *ApplicationRepository) ListByInternship(ctx context.Context, internshipID int64, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.Application, int64, error) {
	where := squirrel.Eq{"a.internship_id": internshipID}
	if status != nil {
		where["a.status"] = *status
	}
	return r.list(ctx, where, offset, limit)
}

func (r *ApplicationRepository) list(ctx context.Context, where squirrel.Eq, offset uint64, limit int) ([]*models.Application, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("applications a").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build application count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.internship_id", "a.cover_letter", "a.resume_url",
		"a.status", "a.rejection_reason", "a.applied_at", "a.reviewed_at",
		"i.id", "i.title", "i.company_name", "i.location", "i.type", "i.is_active",
		"u.name", "s.roll_number",
	).
		From("applications a").
		Join("internships i ON a.internship_id = i.id").
		Join("students s ON a.student_id = s.id").
		Join("users u ON s.user_id = u.id").
		Where(where).
		OrderBy("a.applied_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build application list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.Application
	for rows.Next() {
		var application models.Application
		var internship models.Internship
		var student models.Student
		var user models.User
		if err := rows.Scan(
			&application.ID,
			&application.StudentID,
			&application.InternshipID,
			&application.CoverLetter,
			&application.ResumeURL,
			&application.Status,
			&application.RejectionReason,
			&application.AppliedAt,
			&application.ReviewedAt,
			&internship.ID,
			&internship.Title,
			&internship.CompanyName,
			&internship.Location,
			&internship.Type,
			&internship.IsActive,
			&user.Name,
			&student.RollNumber,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		student.ID = application.StudentID
		student.User = &user
		application.Internship = &internship
		application.Student = &student
		applications = append(applications, &application)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

// UpdateStatus transitions an application and stamps the review time.
// The rejection reason is only stored for rejected applications.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, rejectionReason *string, reviewedAt *time.Time) error {
	query := `
		UPDATE applications
		SET status = $1, rejection_reason = $2, reviewed_at = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, status, rejectionReason, reviewedAt, id)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}
