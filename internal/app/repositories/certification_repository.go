package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/dberrors"
)

// CertificationRepository handles database operations for student certifications
type CertificationRepository struct {
	db *pgxpool.Pool
}

// NewCertificationRepository creates a new CertificationRepository
func NewCertificationRepository(db *pgxpool.Pool) *CertificationRepository {
	return &CertificationRepository{db: db}
}

// Create inserts a new certification
func (r *CertificationRepository) Create(ctx context.Context, cert *models.Certification) error {
	query := `
		INSERT INTO certifications (
			student_id, title, issuer, issue_date, credential_id, credential_url, source, document_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		cert.StudentID,
		cert.Title,
		cert.Issuer,
		cert.IssueDate,
		cert.CredentialID,
		cert.CredentialURL,
		cert.Source,
		cert.DocumentURL,
	).Scan(&cert.ID, &cert.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating certification: %w", err)
	}

	return nil
}

// GetByID retrieves a certification by ID
func (r *CertificationRepository) GetByID(ctx context.Context, id int64) (*models.Certification, error) {
	query := `
		SELECT id, student_id, title, issuer, issue_date, credential_id, credential_url,
		       source, document_url, created_at
		FROM certifications
		WHERE id = $1
	`

	var cert models.Certification
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cert.ID,
		&cert.StudentID,
		&cert.Title,
		&cert.Issuer,
		&cert.IssueDate,
		&cert.CredentialID,
		&cert.CredentialURL,
		&cert.Source,
		&cert.DocumentURL,
		&cert.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificationNotFound
		}
		return nil, fmt.Errorf("error retrieving certification: %w", err)
	}

	return &cert, nil
}

// ListByStudent retrieves a student's certifications, most recent issue first
func (r *CertificationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Certification, error) {
	query := `
		SELECT id, student_id, title, issuer, issue_date, credential_id, credential_url,
		       source, document_url, created_at
		FROM certifications
		WHERE student_id = $1
		ORDER BY issue_date DESC NULLS LAST, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing certifications: %w", err)
	}
	defer rows.Close()

	var certs []*models.Certification
	for rows.Next() {
		var cert models.Certification
		if err := rows.Scan(
			&cert.ID,
			&cert.StudentID,
			&cert.Title,
			&cert.Issuer,
			&cert.IssueDate,
			&cert.CredentialID,
			&cert.CredentialURL,
			&cert.Source,
			&cert.DocumentURL,
			&cert.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning certification row: %w", err)
		}
		certs = append(certs, &cert)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return certs, nil
}

// Update replaces the mutable fields of a certification
func (r *CertificationRepository) Update(ctx context.Context, cert *models.Certification) error {
	query := `
		UPDATE certifications
		SET title = $1, issuer = $2, issue_date = $3, credential_id = $4, credential_url = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		cert.Title,
		cert.Issuer,
		cert.IssueDate,
		cert.CredentialID,
		cert.CredentialURL,
		cert.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating certification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCertificationNotFound
	}

	return nil
}

// Delete removes a certification
func (r *CertificationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM certifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting certification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCertificationNotFound
	}
	return nil
}
