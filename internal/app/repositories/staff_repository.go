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

// StaffRepository handles database operations for faculty members and admins
type StaffRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

var staffColumns = []string{"id", "name", "email", "phone", "password", "role", "description", "skills", "department_id", "created_at"}

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var s models.Staff
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Password, &s.Role, &s.Description, &s.Skills, &s.DepartmentID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a staff member and fills in its ID
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	skills := staff.Skills
	if skills == nil {
		skills = []string{}
	}
	sql, args, err := r.sb.Insert("staff").
		Columns("name", "email", "phone", "password", "role", "description", "skills", "department_id").
		Values(staff.Name, staff.Email, staff.Phone, staff.Password, staff.Role, staff.Description, skills, staff.DepartmentID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create staff query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&staff.ID, &staff.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "staff_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", staff.Email).Msg("Error creating staff member")
		return fmt.Errorf("error creating staff member: %w", err)
	}
	return nil
}

func (r *StaffRepository) getBy(ctx context.Context, where squirrel.Eq) (*models.Staff, error) {
	sql, args, err := r.sb.Select(staffColumns...).From("staff").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	staff, err := scanStaff(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("error retrieving staff member: %w", err)
	}
	return staff, nil
}

// GetByID retrieves a staff member by ID
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a staff member by email
func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

// List returns one page of staff, optionally filtered by role, and the total count
func (r *StaffRepository) List(ctx context.Context, role *models.Role, offset uint64, limit int) ([]*models.Staff, int64, error) {
	where := squirrel.Eq{}
	if role != nil {
		where["role"] = *role
	}

	total, err := count(ctx, r.db, r.sb.Select("COUNT(*)").From("staff").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("error counting staff: %w", err)
	}

	sql, args, err := r.sb.Select(staffColumns...).
		From("staff").
		Where(where).
		OrderBy("name", "id").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing staff: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// ListFaculty returns every faculty member with their skills, ordered by name
func (r *StaffRepository) ListFaculty(ctx context.Context) ([]models.FacultyOption, error) {
	sql, args, err := r.sb.Select("id", "name", "skills").
		From("staff").
		Where(squirrel.Eq{"role": models.RoleFaculty}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty: %w", err)
	}
	defer rows.Close()

	options := make([]models.FacultyOption, 0)
	for rows.Next() {
		var opt models.FacultyOption
		if err := rows.Scan(&opt.ID, &opt.Name, &opt.Skills); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// UpdateProfile updates the editable profile fields of a staff member
func (r *StaffRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) error {
	sql, args, err := r.sb.Update("staff").
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
		return fmt.Errorf("error updating staff profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStaffNotFound
	}
	return nil
}
