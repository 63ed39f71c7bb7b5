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
	"github.com/edusphere/edusphere/internal/pkg/dberrors"
)

// StudentFilter narrows student listings
type StudentFilter struct {
	Department *string
	Semester   *int
	Approved   *bool
	Search     *string
}

// StudentRepository handles database operations for students and their profiles
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, roll_number, department, semester, cgpa, date_of_birth, phone, approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID,
		student.RollNumber,
		student.Department,
		student.Semester,
		student.CGPA,
		student.DateOfBirth,
		student.Phone,
		student.Approved,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_number_key") {
			return apperrors.ErrRollNumberExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentProfileExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student with the owning user joined in
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

// GetByUserID retrieves a student by the owning user's ID
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.user_id": userID})
}

// GetByRollNumber retrieves a student by roll number
func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.roll_number": rollNumber})
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.user_id", "s.roll_number", "s.department", "s.semester", "s.cgpa",
		"s.date_of_birth", "s.phone", "s.approved", "s.created_at", "s.updated_at",
		"u.id", "u.email", "u.name", "u.role",
	).
		From("students s").
		Join("users u ON s.user_id = u.id").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	var student models.Student
	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID,
		&student.UserID,
		&student.RollNumber,
		&student.Department,
		&student.Semester,
		&student.CGPA,
		&student.DateOfBirth,
		&student.Phone,
		&student.Approved,
		&student.CreatedAt,
		&student.UpdatedAt,
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	student.User = &user
	return &student, nil
}

// RollNumberExists checks if a roll number is already taken
func (r *StudentRepository) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE roll_number = $1)`, rollNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking roll number existence: %w", err)
	}
	return exists, nil
}

// List retrieves students matching the filter, newest first
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	base := r.sb.Select(
		"s.id", "s.user_id", "s.roll_number", "s.department", "s.semester", "s.cgpa",
		"s.date_of_birth", "s.phone", "s.approved", "s.created_at", "s.updated_at",
		"u.id", "u.email", "u.name", "u.role",
	).
		From("students s").
		Join("users u ON s.user_id = u.id")

	countQuery := r.sb.Select("COUNT(*)").From("students s").Join("users u ON s.user_id = u.id")

	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Department != nil {
			b = b.Where(squirrel.Eq{"s.department": *filter.Department})
		}
		if filter.Semester != nil {
			b = b.Where(squirrel.Eq{"s.semester": *filter.Semester})
		}
		if filter.Approved != nil {
			b = b.Where(squirrel.Eq{"s.approved": *filter.Approved})
		}
		if filter.Search != nil && *filter.Search != "" {
			pattern := "%" + *filter.Search + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"u.name": pattern},
				squirrel.ILike{"s.roll_number": pattern},
			})
		}
		return b
	}

	countSQL, countArgs, err := applyFilter(countQuery).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err := applyFilter(base).
		OrderBy("s.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var user models.User
		if err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.RollNumber,
			&student.Department,
			&student.Semester,
			&student.CGPA,
			&student.DateOfBirth,
			&student.Phone,
			&student.Approved,
			&student.CreatedAt,
			&student.UpdatedAt,
			&user.ID,
			&user.Email,
			&user.Name,
			&user.Role,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		student.User = &user
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Update updates an existing student record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET department = $1, semester = $2, cgpa = $3, date_of_birth = $4, phone = $5, updated_at = NOW()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Department,
		student.Semester,
		student.CGPA,
		student.DateOfBirth,
		student.Phone,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SetApproved marks a student record as approved or unapproved
func (r *StudentRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET approved = $1, updated_at = NOW() WHERE id = $2`,
		approved, id)
	if err != nil {
		return fmt.Errorf("error updating student approval: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Deactivate disables the user account behind a student record.
// The student row and everything referencing it stay in place.
func (r *StudentRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_active = FALSE, updated_at = NOW()
		FROM students
		WHERE students.user_id = users.id AND students.id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("error deactivating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// GetProfile retrieves the extended profile for a student
func (r *StudentRepository) GetProfile(ctx context.Context, studentID int64) (*models.Profile, error) {
	query := `
		SELECT id, student_id, bio, gender, dob, avatar_url, github, linkedin,
		       COALESCE(skills, '[]'::jsonb), COALESCE(interests, '[]'::jsonb), resume_url, updated_at
		FROM profiles
		WHERE student_id = $1
	`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&profile.ID,
		&profile.StudentID,
		&profile.Bio,
		&profile.Gender,
		&profile.DOB,
		&profile.AvatarURL,
		&profile.GitHub,
		&profile.LinkedIn,
		&profile.Skills,
		&profile.Interests,
		&profile.ResumeURL,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return &profile, nil
}

// UpsertProfile creates or replaces the extended profile for a student
func (r *StudentRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (student_id, bio, gender, dob, avatar_url, github, linkedin, skills, interests, resume_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (student_id) DO UPDATE
		SET bio = EXCLUDED.bio,
		    gender = EXCLUDED.gender,
		    dob = EXCLUDED.dob,
		    avatar_url = EXCLUDED.avatar_url,
		    github = EXCLUDED.github,
		    linkedin = EXCLUDED.linkedin,
		    skills = EXCLUDED.skills,
		    interests = EXCLUDED.interests,
		    resume_url = EXCLUDED.resume_url,
		    updated_at = NOW()
		RETURNING id, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.StudentID,
		profile.Bio,
		profile.Gender,
		profile.DOB,
		profile.AvatarURL,
		profile.GitHub,
		profile.LinkedIn,
		profile.Skills,
		profile.Interests,
		profile.ResumeURL,
	).Scan(&profile.ID, &profile.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error upserting profile: %w", err)
	}

	return nil
}
