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

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func mapDepartmentWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "departments_name_key"):
		return apperrors.NewConflictError("A department with this name already exists.")
	case dberrors.IsDuplicateConstraintError(err, "departments_code_key"):
		return apperrors.NewConflictError("A department with this code already exists.")
	}
	return err
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Insert("departments").
		Columns("name", "code").
		Values(department.Name, department.Code).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&department.ID, &department.CreatedAt); err != nil {
		if mapped := mapDepartmentWriteError(err); mapped != err {
			return mapped
		}
		logger.Error().Err(err).Str("name", department.Name).Msg("Error creating department")
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "created_at").
		From("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	var department models.Department
	err = r.db.QueryRow(ctx, sql, args...).Scan(&department.ID, &department.Name, &department.Code, &department.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return &department, nil
}

// List retrieves all departments ordered by name
func (r *DepartmentRepository) List(ctx context.Context) ([]*models.Department, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "created_at").
		From("departments").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	departments := make([]*models.Department, 0)
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name, &department.Code, &department.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}
	return departments, rows.Err()
}

// Update updates a department's name and code
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Update("departments").
		Set("name", department.Name).
		Set("code", department.Code).
		Where(squirrel.Eq{"id": department.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update department query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if mapped := mapDepartmentWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error updating department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// Delete removes a department. Departments still referenced by students, staff or groups cannot be deleted.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("Department is in use and cannot be deleted.")
		}
		return fmt.Errorf("error deleting department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}
