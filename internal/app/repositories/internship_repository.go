package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// InternshipFilter narrows internship listings
type InternshipFilter struct {
	Type     *string
	Location *string
	Company  *string
	IsActive *bool
	Search   *string
}

// InternshipRepository handles database operations for internship postings
type InternshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new internship posting
func (r *InternshipRepository) Create(ctx context.Context, internship *models.Internship) error {
	query := `
		INSERT INTO internships (
			title, description, company_name, location, type, duration, stipend,
			required_skills, start_date, end_date, application_deadline, posted_by, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		internship.Title,
		internship.Description,
		internship.CompanyName,
		internship.Location,
		internship.Type,
		internship.Duration,
		internship.Stipend,
		internship.RequiredSkills,
		internship.StartDate,
		internship.EndDate,
		internship.ApplicationDeadline,
		internship.PostedBy,
		internship.IsActive,
	).Scan(&internship.ID, &internship.CreatedAt, &internship.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating internship: %w", err)
	}

	return nil
}

// GetByID retrieves an internship by ID, including its application count
func (r *InternshipRepository) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	query := `
		SELECT i.id, i.title, i.description, i.company_name, i.location, i.type,
		       i.duration, i.stipend, COALESCE(i.required_skills, '[]'::jsonb),
		       i.start_date, i.end_date, i.application_deadline, i.posted_by,
		       i.is_active, i.created_at, i.updated_at,
		       (SELECT COUNT(*) FROM applications a WHERE a.internship_id = i.id)
		FROM internships i
		WHERE i.id = $1
	`

	var internship models.Internship
	err := r.db.QueryRow(ctx, query, id).Scan(
		&internship.ID,
		&internship.Title,
		&internship.Description,
		&internship.CompanyName,
		&internship.Location,
		&internship.Type,
		&internship.Duration,
		&internship.Stipend,
		&internship.RequiredSkills,
		&internship.StartDate,
		&internship.EndDate,
		&internship.ApplicationDeadline,
		&internship.PostedBy,
		&internship.IsActive,
		&internship.CreatedAt,
		&internship.UpdatedAt,
		&internship.ApplicationsCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternshipNotFound
		}
		return nil, fmt.Errorf("error retrieving internship: %w", err)
	}

	return &internship, nil
}

// List retrieves internships matching the filter, newest first
func (r *InternshipRepository) List(ctx context.Context, filter InternshipFilter, offset uint64, limit int) ([]*models.Internship, int64, error) {
	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Type != nil {
			b = b.Where(squirrel.Eq{"i.type": *filter.Type})
		}
		if filter.Location != nil && *filter.Location != "" {
			b = b.Where(squirrel.ILike{"i.location": "%" + *filter.Location + "%"})
		}
		if filter.Company != nil && *filter.Company != "" {
			b = b.Where(squirrel.ILike{"i.company_name": "%" + *filter.Company + "%"})
		}
		if filter.IsActive != nil {
			b = b.Where(squirrel.Eq{"i.is_active": *filter.IsActive})
		}
		if filter.Search != nil && *filter.Search != "" {
			pattern := "%" + *filter.Search + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"i.title": pattern},
				squirrel.ILike{"i.description": pattern},
				squirrel.ILike{"i.company_name": pattern},
			})
		}
		return b
	}

	countSQL, countArgs, err := applyFilter(r.sb.Select("COUNT(*)").From("internships i")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build internship count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting internships: %w", err)
	}

	sql, args, err := applyFilter(r.sb.Select(
		"i.id", "i.title", "i.description", "i.company_name", "i.location", "i.type",
		"i.duration", "i.stipend", "COALESCE(i.required_skills, '[]'::jsonb)",
		"i.start_date", "i.end_date", "i.application_deadline", "i.posted_by",
		"i.is_active", "i.created_at", "i.updated_at",
		"(SELECT COUNT(*) FROM applications a WHERE a.internship_id = i.id)",
	).From("internships i")).
		OrderBy("i.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build internship list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing internships: %w", err)
	}
	defer rows.Close()

	var internships []*models.Internship
	for rows.Next() {
		var internship models.Internship
		if err := rows.Scan(
			&internship.ID,
			&internship.Title,
			&internship.Description,
			&internship.CompanyName,
			&internship.Location,
			&internship.Type,
			&internship.Duration,
			&internship.Stipend,
			&internship.RequiredSkills,
			&internship.StartDate,
			&internship.EndDate,
			&internship.ApplicationDeadline,
			&internship.PostedBy,
			&internship.IsActive,
			&internship.CreatedAt,
			&internship.UpdatedAt,
			&internship.ApplicationsCount,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, &internship)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return internships, total, nil
}

// Update replaces the mutable fields of an internship
func (r *InternshipRepository) Update(ctx context.Context, internship *models.Internship) error {
	query := `
		UPDATE internships
		SET title = $1, description = $2, company_name = $3, location = $4, type = $5,
		    duration = $6, stipend = $7, required_skills = $8, start_date = $9,
		    end_date = $10, application_deadline = $11, is_active = $12, updated_at = NOW()
		WHERE id = $13
	`

	cmdTag, err := r.db.Exec(ctx, query,
		internship.Title,
		internship.Description,
		internship.CompanyName,
		internship.Location,
		internship.Type,
		internship.Duration,
		internship.Stipend,
		internship.RequiredSkills,
		internship.StartDate,
		internship.EndDate,
		internship.ApplicationDeadline,
		internship.IsActive,
		internship.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating internship: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}

	return nil
}

// SetActive toggles the active flag on an internship
func (r *InternshipRepository) SetActive(ctx context.Context, id int64, active bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE internships SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id)
	if err != nil {
		return fmt.Errorf("error updating internship status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// Delete retires a posting by deactivating it. The row is kept so
// application history for the internship survives.
func (r *InternshipRepository) Delete(ctx context.Context, id int64) error {
	return r.SetActive(ctx, id, false)
}
