package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/dberrors"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

var studentColumns = []string{"id", "name", "email", "phone", "password", "description", "skills", "department_id", "created_at"}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Password, &s.Description, &s.Skills, &s.DepartmentID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a student and fills in its ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	skills := student.Skills
	if skills == nil {
		skills = []string{}
	}
	sql, args, err := r.sb.Insert("students").
		Columns("name", "email", "phone", "password", "description", "skills", "department_id").
		Values(student.Name, student.Email, student.Phone, student.Password, student.Description, skills, student.DepartmentID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

func (r *StudentRepository) getBy(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).From("students").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

// List returns one page of students ordered by name and the total count
func (r *StudentRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	total, err := count(ctx, r.db, r.sb.Select("COUNT(*)").From("students"))
	if err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("name", "id").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// UpdateProfile updates the editable profile fields of a student
func (r *StudentRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) error {
	sql, args, err := r.sb.Update("students").
		Set("name", update.Name).
		Set("phone", update.Phone).
		Set("description", update.Description).
		Set("skills", update.Skills).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SearchBySkills returns students whose skills overlap any of the given skills, ordered by
// name, with the name and title of their group if they have one. Matching is case-insensitive.
func (r *StudentRepository) SearchBySkills(ctx context.Context, skills []string) ([]*models.StudentSearchResult, error) {
	sql, args, err := r.sb.Select("s.id", "s.name", "s.email", "s.skills", "s.description", "pg.name", "pg.project_title").
		From("students s").
		LeftJoin("project_group_members m ON m.student_id = s.id").
		LeftJoin("project_groups pg ON pg.id = m.group_id").
		Where("EXISTS (SELECT 1 FROM unnest(s.skills) AS sk WHERE lower(sk) = ANY (SELECT lower(q) FROM unnest(?::text[]) AS q))", skills).
		OrderBy("s.name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching students by skills: %w", err)
	}
	defer rows.Close()

	results := make([]*models.StudentSearchResult, 0)
	for rows.Next() {
		var res models.StudentSearchResult
		if err := rows.Scan(&res.ID, &res.Name, &res.Email, &res.Skills, &res.Description, &res.GroupName, &res.ProjectTitle); err != nil {
			return nil, err
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}
