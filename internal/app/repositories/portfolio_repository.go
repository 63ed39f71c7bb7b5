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

// PortfolioRepository handles database operations for portfolio projects
// and generated CVs
type PortfolioRepository struct {
	db *pgxpool.Pool
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(db *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// CreateProject inserts a manually added portfolio project
func (r *PortfolioRepository) CreateProject(ctx context.Context, project *models.PortfolioProject) error {
	query := `
		INSERT INTO portfolio_projects (
			student_id, title, description, github_url, live_url, tags, source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		project.StudentID,
		project.Title,
		project.Description,
		project.GitHubURL,
		project.LiveURL,
		project.Tags,
		project.Source,
	).Scan(&project.ID, &project.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating project: %w", err)
	}

	return nil
}

// UpsertSyncedProject stores a repository pulled from GitHub, updating the
// existing row when the repository was synced before
func (r *PortfolioRepository) UpsertSyncedProject(ctx context.Context, project *models.PortfolioProject) error {
	query := `
		INSERT INTO portfolio_projects (
			student_id, title, description, github_url, tags, source,
			github_repo_id, stars, forks, language, last_synced_at
		)
		VALUES ($1, $2, $3, $4, $5, 'github', $6, $7, $8, $9, NOW())
		ON CONFLICT (student_id, github_repo_id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    github_url = EXCLUDED.github_url,
		    tags = EXCLUDED.tags,
		    stars = EXCLUDED.stars,
		    forks = EXCLUDED.forks,
		    language = EXCLUDED.language,
		    last_synced_at = NOW()
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		project.StudentID,
		project.Title,
		project.Description,
		project.GitHubURL,
		project.Tags,
		project.GitHubRepoID,
		project.Stars,
		project.Forks,
		project.Language,
	).Scan(&project.ID, &project.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error upserting synced project: %w", err)
	}

	return nil
}

// GetProjectByID retrieves a portfolio project by ID
func (r *PortfolioRepository) GetProjectByID(ctx context.Context, id int64) (*models.PortfolioProject, error) {
	query := `
		SELECT id, student_id, title, description, github_url, live_url,
		       COALESCE(tags, '[]'::jsonb), source, github_repo_id, stars, forks,
		       language, last_synced_at, created_at
		FROM portfolio_projects
		WHERE id = $1
	`

	var project models.PortfolioProject
	err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.StudentID,
		&project.Title,
		&project.Description,
		&project.GitHubURL,
		&project.LiveURL,
		&project.Tags,
		&project.Source,
		&project.GitHubRepoID,
		&project.Stars,
		&project.Forks,
		&project.Language,
		&project.LastSyncedAt,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}

	return &project, nil
}

// ListProjectsByStudent retrieves a student's portfolio, most starred first
func (r *PortfolioRepository) ListProjectsByStudent(ctx context.Context, studentID int64) ([]*models.PortfolioProject, error) {
	query := `
		SELECT id, student_id, title, description, github_url, live_url,
		       COALESCE(tags, '[]'::jsonb), source, github_repo_id, stars, forks,
		       language, last_synced_at, created_at
		FROM portfolio_projects
		WHERE student_id = $1
		ORDER BY stars DESC, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.PortfolioProject
	for rows.Next() {
		var project models.PortfolioProject
		if err := rows.Scan(
			&project.ID,
			&project.StudentID,
			&project.Title,
			&project.Description,
			&project.GitHubURL,
			&project.LiveURL,
			&project.Tags,
			&project.Source,
			&project.GitHubRepoID,
			&project.Stars,
			&project.Forks,
			&project.Language,
			&project.LastSyncedAt,
			&project.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning project row: %w", err)
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// DeleteProject removes a portfolio project, scoped to its owner
func (r *PortfolioRepository) DeleteProject(ctx context.Context, id, studentID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM portfolio_projects WHERE id = $1 AND student_id = $2`, id, studentID)
	if err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteStaleSyncedProjects removes GitHub-sourced projects that were not
// part of the latest sync run
func (r *PortfolioRepository) DeleteStaleSyncedProjects(ctx context.Context, studentID int64, keepRepoIDs []string) (int64, error) {
	query := `
		DELETE FROM portfolio_projects
		WHERE student_id = $1 AND source = 'github' AND NOT (github_repo_id = ANY($2))
	`

	cmdTag, err := r.db.Exec(ctx, query, studentID, keepRepoIDs)
	if err != nil {
		return 0, fmt.Errorf("error pruning synced projects: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// CreateCV records a generated CV
func (r *PortfolioRepository) CreateCV(ctx context.Context, cv *models.CVGeneration) error {
	query := `
		INSERT INTO cv_generations (student_id, template_name, file_url, format)
		VALUES ($1, $2, $3, $4)
		RETURNING id, generated_at
	`

	err := r.db.QueryRow(ctx, query,
		cv.StudentID,
		cv.TemplateName,
		cv.FileURL,
		cv.Format,
	).Scan(&cv.ID, &cv.GeneratedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error recording cv generation: %w", err)
	}

	return nil
}

// ListCVsByStudent retrieves a student's generated CVs, newest first
func (r *PortfolioRepository) ListCVsByStudent(ctx context.Context, studentID int64) ([]*models.CVGeneration, error) {
	query := `
		SELECT id, student_id, template_name, file_url, format, generated_at
		FROM cv_generations
		WHERE student_id = $1
		ORDER BY generated_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing cv generations: %w", err)
	}
	defer rows.Close()

	var cvs []*models.CVGeneration
	for rows.Next() {
		var cv models.CVGeneration
		if err := rows.Scan(
			&cv.ID,
			&cv.StudentID,
			&cv.TemplateName,
			&cv.FileURL,
			&cv.Format,
			&cv.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning cv row: %w", err)
		}
		cvs = append(cvs, &cv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cvs, nil
}

// GetLatestCV retrieves the most recent CV for a student
func (r *PortfolioRepository) GetLatestCV(ctx context.Context, studentID int64) (*models.CVGeneration, error) {
	query := `
		SELECT id, student_id, template_name, file_url, format, generated_at
		FROM cv_generations
		WHERE student_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`

	var cv models.CVGeneration
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&cv.ID,
		&cv.StudentID,
		&cv.TemplateName,
		&cv.FileURL,
		&cv.Format,
		&cv.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCVNotFound
		}
		return nil, fmt.Errorf("error retrieving latest cv: %w", err)
	}

	return &cv, nil
}
