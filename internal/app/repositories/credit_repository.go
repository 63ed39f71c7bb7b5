package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/dberrors"
)

// CreditRepository handles database operations for student credit balances
type CreditRepository struct {
	db *pgxpool.Pool
}

// NewCreditRepository creates a new CreditRepository
func NewCreditRepository(db *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{db: db}
}

// Add increments a student's balance, creating the row on first award.
// The upsert is a single statement so concurrent awards never lose an increment.
func (r *CreditRepository) Add(ctx context.Context, studentID int64, amount int) (*models.Credit, error) {
	query := `
		INSERT INTO credits (student_id, credits_earned, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (student_id) DO UPDATE
		SET credits_earned = credits.credits_earned + EXCLUDED.credits_earned,
		    updated_at = NOW()
		RETURNING id, student_id, credits_earned, updated_at
	`

	var credit models.Credit
	err := r.db.QueryRow(ctx, query, studentID, amount).Scan(
		&credit.ID,
		&credit.StudentID,
		&credit.CreditsEarned,
		&credit.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error adding credits: %w", err)
	}

	return &credit, nil
}

// GetByStudentID retrieves a student's balance. The zero row is
// persisted on first read so every student has a real ledger entry.
func (r *CreditRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.Credit, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO credits (student_id) VALUES ($1)
		ON CONFLICT (student_id) DO NOTHING
	`, studentID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error ensuring credit row: %w", err)
	}

	query := `
		SELECT id, student_id, credits_earned, updated_at
		FROM credits
		WHERE student_id = $1
	`

	var credit models.Credit
	err = r.db.QueryRow(ctx, query, studentID).Scan(
		&credit.ID,
		&credit.StudentID,
		&credit.CreditsEarned,
		&credit.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error retrieving credits: %w", err)
	}

	return &credit, nil
}

// ListTop retrieves the highest balances for the leaderboard
func (r *CreditRepository) ListTop(ctx context.Context, limit int) ([]*models.Credit, error) {
	query := `
		SELECT id, student_id, credits_earned, updated_at
		FROM credits
		ORDER BY credits_earned DESC, updated_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing top credits: %w", err)
	}
	defer rows.Close()

	var credits []*models.Credit
	for rows.Next() {
		var credit models.Credit
		if err := rows.Scan(
			&credit.ID,
			&credit.StudentID,
			&credit.CreditsEarned,
			&credit.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning credit row: %w", err)
		}
		credits = append(credits, &credit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return credits, nil
}
