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
)

// ProjectTypeRepository handles database operations for project types
type ProjectTypeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProjectTypeRepository creates a new project type repository
func NewProjectTypeRepository(db *pgxpool.Pool) *ProjectTypeRepository {
	return &ProjectTypeRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

// Create creates a new project type
func (r *ProjectTypeRepository) Create(ctx context.Context, pt *models.ProjectType) error {
	sql, args, err := r.sb.Insert("project_types").
		Columns("name", "description").
		Values(pt.Name, pt.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&pt.ID, &pt.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "project_types_name_key") {
			return apperrors.NewConflictError("A project type with this name already exists.")
		}
		return fmt.Errorf("error creating project type: %w", err)
	}
	return nil
}

// GetByID retrieves a project type by ID
func (r *ProjectTypeRepository) GetByID(ctx context.Context, id int64) (*models.ProjectType, error) {
	var pt models.ProjectType
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, created_at
		FROM project_types
		WHERE id = $1`, id).Scan(&pt.ID, &pt.Name, &pt.Description, &pt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectTypeNotFound
		}
		return nil, fmt.Errorf("error retrieving project type: %w", err)
	}
	return &pt, nil
}

// List retrieves all project types ordered by name with the number of groups using each
func (r *ProjectTypeRepository) List(ctx context.Context) ([]*models.ProjectType, error) {
	sql, args, err := r.sb.Select("pt.id", "pt.name", "pt.description", "pt.created_at", "COUNT(pg.id)").
		From("project_types pt").
		LeftJoin("project_groups pg ON pg.project_type_id = pt.id").
		GroupBy("pt.id").
		OrderBy("pt.name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing project types: %w", err)
	}
	defer rows.Close()

	types := make([]*models.ProjectType, 0)
	for rows.Next() {
		var pt models.ProjectType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Description, &pt.CreatedAt, &pt.GroupCount); err != nil {
			return nil, err
		}
		types = append(types, &pt)
	}
	return types, rows.Err()
}

// Update updates a project type
func (r *ProjectTypeRepository) Update(ctx context.Context, pt *models.ProjectType) error {
	sql, args, err := r.sb.Update("project_types").
		Set("name", pt.Name).
		Set("description", pt.Description).
		Where(squirrel.Eq{"id": pt.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "project_types_name_key") {
			return apperrors.NewConflictError("A project type with this name already exists.")
		}
		return fmt.Errorf("error updating project type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProjectTypeNotFound
	}
	return nil
}

// Delete removes a project type that no group uses
func (r *ProjectTypeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM project_types WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("Cannot delete a project type that is used by project groups.")
		}
		return fmt.Errorf("error deleting project type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProjectTypeNotFound
	}
	return nil
}
