package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/db"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/dberrors"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

// AcademicYearRepository handles database operations for academic years
type AcademicYearRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAcademicYearRepository creates a new academic year repository
func NewAcademicYearRepository(db *pgxpool.Pool) *AcademicYearRepository {
	return &AcademicYearRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

var academicYearColumns = []string{"id", "year_name", "start_date", "end_date", "is_current", "created_at"}

func scanAcademicYear(row pgx.Row) (*models.AcademicYear, error) {
	var y models.AcademicYear
	if err := row.Scan(&y.ID, &y.YearName, &y.StartDate, &y.EndDate, &y.IsCurrent, &y.CreatedAt); err != nil {
		return nil, err
	}
	return &y, nil
}

func mapAcademicYearWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "academic_years_year_name_key"):
		return apperrors.NewConflictError("An academic year with this name already exists.")
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError("End date must be after start date.")
	}
	return err
}

// clearCurrent unsets is_current on every year except keepID
func (r *AcademicYearRepository) clearCurrent(ctx context.Context, tx pgx.Tx, keepID int64) error {
	sql, args, err := r.sb.Update("academic_years").
		Set("is_current", false).
		Where(squirrel.Eq{"is_current": true}).
		Where(squirrel.NotEq{"id": keepID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

// Create inserts an academic year. When it is current, the flag is cleared on the others in the same transaction.
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if year.IsCurrent {
			if err := r.clearCurrent(ctx, tx, 0); err != nil {
				return err
			}
		}
		sql, args, err := r.sb.Insert("academic_years").
			Columns("year_name", "start_date", "end_date", "is_current").
			Values(year.YearName, year.StartDate, year.EndDate, year.IsCurrent).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, sql, args...).Scan(&year.ID, &year.CreatedAt)
	})
	if err != nil {
		if mapped := mapAcademicYearWriteError(err); mapped != err {
			return mapped
		}
		logger.Error().Err(err).Str("yearName", year.YearName).Msg("Error creating academic year")
		return fmt.Errorf("error creating academic year: %w", err)
	}
	return nil
}

// GetByID retrieves an academic year by ID
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	sql, args, err := r.sb.Select(academicYearColumns...).
		From("academic_years").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	year, err := scanAcademicYear(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}
	return year, nil
}

// GetCurrent returns the academic year flagged as current
func (r *AcademicYearRepository) GetCurrent(ctx context.Context) (*models.AcademicYear, error) {
	sql, args, err := r.sb.Select(academicYearColumns...).
		From("academic_years").
		Where(squirrel.Eq{"is_current": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	year, err := scanAcademicYear(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving current academic year: %w", err)
	}
	return year, nil
}

// List retrieves all academic years, newest name first
func (r *AcademicYearRepository) List(ctx context.Context) ([]*models.AcademicYear, error) {
	sql, args, err := r.sb.Select(academicYearColumns...).
		From("academic_years").
		OrderBy("year_name DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing academic years: %w", err)
	}
	defer rows.Close()

	years := make([]*models.AcademicYear, 0)
	for rows.Next() {
		year, err := scanAcademicYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// Update rewrites an academic year, clearing the current flag on the others when needed
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if year.IsCurrent {
			if err := r.clearCurrent(ctx, tx, year.ID); err != nil {
				return err
			}
		}
		sql, args, err := r.sb.Update("academic_years").
			Set("year_name", year.YearName).
			Set("start_date", year.StartDate).
			Set("end_date", year.EndDate).
			Set("is_current", year.IsCurrent).
			Where(squirrel.Eq{"id": year.ID}).
			ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrAcademicYearNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAcademicYearNotFound) {
			return err
		}
		if mapped := mapAcademicYearWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error updating academic year: %w", err)
	}
	return nil
}

// Delete removes an academic year that no group references
func (r *AcademicYearRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM academic_years WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("Academic year is in use and cannot be deleted.")
		}
		return fmt.Errorf("error deleting academic year: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}
