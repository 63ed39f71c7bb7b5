package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/db"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/dberrors"
)

// MentorRepository handles database operations for mentors, sessions and reviews
type MentorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMentorRepository creates a new MentorRepository
func NewMentorRepository(db *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create registers a user as a mentor
func (r *MentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	query := `
		INSERT INTO mentors (user_id, expertise, bio, rating)
		VALUES ($1, $2, $3, 0)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		mentor.UserID,
		mentor.Expertise,
		mentor.Bio,
	).Scan(&mentor.ID, &mentor.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyMentor
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating mentor: %w", err)
	}

	return nil
}

// GetByID retrieves a mentor with the owning user joined in
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	return r.getOne(ctx, squirrel.Eq{"m.id": id})
}

// GetByUserID retrieves a mentor by the owning user's ID
func (r *MentorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Mentor, error) {
	return r.getOne(ctx, squirrel.Eq{"m.user_id": userID})
}

func (r *MentorRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Mentor, error) {
	sql, args, err := r.sb.Select(
		"m.id", "m.user_id", "m.expertise", "m.bio", "m.rating", "m.created_at",
		"u.id", "u.email", "u.name", "u.role",
		"(SELECT COUNT(*) FROM mentor_sessions ms WHERE ms.mentor_id = m.id)",
		"(SELECT COUNT(*) FROM mentor_reviews mr WHERE mr.mentor_id = m.id)",
	).
		From("mentors m").
		Join("users u ON m.user_id = u.id").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build mentor query: %w", err)
	}

	var mentor models.Mentor
	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&mentor.ID,
		&mentor.UserID,
		&mentor.Expertise,
		&mentor.Bio,
		&mentor.Rating,
		&mentor.CreatedAt,
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&mentor.SessionsCount,
		&mentor.ReviewsCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorNotFound
		}
		return nil, fmt.Errorf("error retrieving mentor: %w", err)
	}

	mentor.User = &user
	return &mentor, nil
}

// List retrieves mentors ordered by rating, optionally filtered by expertise
func (r *MentorRepository) List(ctx context.Context, expertise *string, offset uint64, limit int) ([]*models.Mentor, int64, error) {
	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if expertise != nil && *expertise != "" {
			b = b.Where(squirrel.ILike{"m.expertise": "%" + *expertise + "%"})
		}
		return b
	}

	countSQL, countArgs, err := applyFilter(r.sb.Select("COUNT(*)").From("mentors m")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build mentor count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting mentors: %w", err)
	}

	sql, args, err := applyFilter(r.sb.Select(
		"m.id", "m.user_id", "m.expertise", "m.bio", "m.rating", "m.created_at",
		"u.id", "u.email", "u.name", "u.role",
		"(SELECT COUNT(*) FROM mentor_reviews mr WHERE mr.mentor_id = m.id)",
	).
		From("mentors m").
		Join("users u ON m.user_id = u.id")).
		OrderBy("m.rating DESC", "m.created_at ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build mentor list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing mentors: %w", err)
	}
	defer rows.Close()

	var mentors []*models.Mentor
	for rows.Next() {
		var mentor models.Mentor
		var user models.User
		if err := rows.Scan(
			&mentor.ID,
			&mentor.UserID,
			&mentor.Expertise,
			&mentor.Bio,
			&mentor.Rating,
			&mentor.CreatedAt,
			&user.ID,
			&user.Email,
			&user.Name,
			&user.Role,
			&mentor.ReviewsCount,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning mentor row: %w", err)
		}
		mentor.User = &user
		mentors = append(mentors, &mentor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return mentors, total, nil
}

// CreateSession books a new mentorship session
func (r *MentorRepository) CreateSession(ctx context.Context, session *models.MentorSession) error {
	query := `
		INSERT INTO mentor_sessions (student_id, mentor_id, scheduled_at, meeting_link, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		session.StudentID,
		session.MentorID,
		session.ScheduledAt,
		session.MeetingLink,
		session.Status,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrMentorNotFound
		}
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetSessionByID retrieves a session by ID
func (r *MentorRepository) GetSessionByID(ctx context.Context, id int64) (*models.MentorSession, error) {
	query := `
		SELECT id, student_id, mentor_id, scheduled_at, meeting_link, status, created_at
		FROM mentor_sessions
		WHERE id = $1
	`

	var session models.MentorSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.StudentID,
		&session.MentorID,
		&session.ScheduledAt,
		&session.MeetingLink,
		&session.Status,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return &session, nil
}

// ListSessionsByStudent retrieves a student's sessions, soonest first
func (r *MentorRepository) ListSessionsByStudent(ctx context.Context, studentID int64, offset uint64, limit int) ([]*models.MentorSession, int64, error) {
	return r.listSessions(ctx, squirrel.Eq{"ms.student_id": studentID}, offset, limit)
}

// ListSessionsByMentor retrieves a mentor's sessions, soonest first
func (r *MentorRepository) ListSessionsByMentor(ctx context.Context, mentorID int64, offset uint64, limit int) ([]*models.MentorSession, int64, error) {
	return r.listSessions(ctx, squirrel.Eq{"ms.mentor_id": mentorID}, offset, limit)
}

func (r *MentorRepository) listSessions(ctx context.Context, where squirrel.Eq, offset uint64, limit int) ([]*models.MentorSession, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("mentor_sessions ms").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build session count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting sessions: %w", err)
	}

	sql, args, err := r.sb.Select(
		"ms.id", "ms.student_id", "ms.mentor_id", "ms.scheduled_at",
		"ms.meeting_link", "ms.status", "ms.created_at",
		"mu.name", "su.name",
	).
		From("mentor_sessions ms").
		Join("mentors m ON ms.mentor_id = m.id").
		Join("users mu ON m.user_id = mu.id").
		Join("students s ON ms.student_id = s.id").
		Join("users su ON s.user_id = su.id").
		Where(where).
		OrderBy("ms.scheduled_at ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build session list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.MentorSession
	for rows.Next() {
		var session models.MentorSession
		var mentorName, studentName string
		if err := rows.Scan(
			&session.ID,
			&session.StudentID,
			&session.MentorID,
			&session.ScheduledAt,
			&session.MeetingLink,
			&session.Status,
			&session.CreatedAt,
			&mentorName,
			&studentName,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning session row: %w", err)
		}
		session.Mentor = &models.Mentor{ID: session.MentorID, User: &models.User{Name: mentorName}}
		session.Student = &models.Student{ID: session.StudentID, User: &models.User{Name: studentName}}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// UpdateSessionStatus transitions a session to a new status
func (r *MentorRepository) UpdateSessionStatus(ctx context.Context, id int64, status models.SessionStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE mentor_sessions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating session status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// CreateReview inserts a review and recomputes the mentor's aggregate rating
// in the same transaction so concurrent reviews never leave a stale average.
func (r *MentorRepository) CreateReview(ctx context.Context, review *models.MentorReview) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO mentor_reviews (mentor_id, student_id, rating, comments)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, review.MentorID, review.StudentID, review.Rating, review.Comments).
			Scan(&review.ID, &review.CreatedAt)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyReviewed
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrMentorNotFound
			}
			return fmt.Errorf("error creating review: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE mentors
			SET rating = (SELECT COALESCE(AVG(rating), 0) FROM mentor_reviews WHERE mentor_id = $1)
			WHERE id = $1
		`, review.MentorID)
		if err != nil {
			return fmt.Errorf("error recomputing mentor rating: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrMentorNotFound
		}

		return nil
	})
}

// ListReviews retrieves a mentor's reviews, newest first
func (r *MentorRepository) ListReviews(ctx context.Context, mentorID int64, offset uint64, limit int) ([]*models.MentorReview, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM mentor_reviews WHERE mentor_id = $1`, mentorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting reviews: %w", err)
	}

	sql, args, err := r.sb.Select(
		"mr.id", "mr.mentor_id", "mr.student_id", "mr.rating", "mr.comments", "mr.created_at",
		"u.name",
	).
		From("mentor_reviews mr").
		Join("students s ON mr.student_id = s.id").
		Join("users u ON s.user_id = u.id").
		Where(squirrel.Eq{"mr.mentor_id": mentorID}).
		OrderBy("mr.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build review list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.MentorReview
	for rows.Next() {
		var review models.MentorReview
		var studentName string
		if err := rows.Scan(
			&review.ID,
			&review.MentorID,
			&review.StudentID,
			&review.Rating,
			&review.Comments,
			&review.CreatedAt,
			&studentName,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning review row: %w", err)
		}
		review.Student = &models.Student{ID: review.StudentID, User: &models.User{Name: studentName}}
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
