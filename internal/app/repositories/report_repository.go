package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/dberrors"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

// ReportRepository handles weekly reports
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func (r *ReportRepository) selectReports() squirrel.SelectBuilder {
	return r.sb.Select("wr.id", "wr.group_id", "wr.week_number", "wr.content", "wr.submitted_by", "wr.submitted_at",
		"wr.feedback", "wr.marks", "wr.status", "wr.reviewed_at", "pg.name", "s.name").
		From("weekly_reports wr").
		Join("project_groups pg ON pg.id = wr.group_id").
		Join("students s ON s.id = wr.submitted_by")
}

func scanReport(row pgx.Row) (*models.WeeklyReport, error) {
	var wr models.WeeklyReport
	err := row.Scan(&wr.ID, &wr.GroupID, &wr.WeekNumber, &wr.Content, &wr.SubmittedBy, &wr.SubmittedAt,
		&wr.Feedback, &wr.Marks, &wr.Status, &wr.ReviewedAt, &wr.GroupName, &wr.SubmitterName)
	if err != nil {
		return nil, err
	}
	return &wr, nil
}

func (r *ReportRepository) queryReports(ctx context.Context, q squirrel.SelectBuilder) ([]*models.WeeklyReport, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.WeeklyReport, 0)
	for rows.Next() {
		wr, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, wr)
	}
	return reports, rows.Err()
}

// Create stores a pending report. One report per group and week.
func (r *ReportRepository) Create(ctx context.Context, report *models.WeeklyReport) error {
	sql, args, err := r.sb.Insert("weekly_reports").
		Columns("group_id", "week_number", "content", "submitted_by", "status").
		Values(report.GroupID, report.WeekNumber, report.Content, report.SubmittedBy, models.ReportPending).
		Suffix("RETURNING id, submitted_at, status").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&report.ID, &report.SubmittedAt, &report.Status); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "weekly_reports_group_id_week_number_key") {
			return apperrors.ErrDuplicateReport
		}
		logger.Error().Err(err).Int64("groupID", report.GroupID).Int("week", report.WeekNumber).Msg("Error creating weekly report")
		return fmt.Errorf("error creating weekly report: %w", err)
	}
	return nil
}

// GetByID retrieves a report
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.WeeklyReport, error) {
	sql, args, err := r.selectReports().Where(squirrel.Eq{"wr.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	wr, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("error retrieving report: %w", err)
	}
	return wr, nil
}

// ListByGroup returns a group's reports, newest week first
func (r *ReportRepository) ListByGroup(ctx context.Context, groupID int64) ([]*models.WeeklyReport, error) {
	return r.queryReports(ctx, r.selectReports().
		Where(squirrel.Eq{"wr.group_id": groupID}).
		OrderBy("wr.week_number DESC"))
}

// ListByGuide returns reports of the groups a faculty member guides, optionally filtered by status
func (r *ReportRepository) ListByGuide(ctx context.Context, guideID int64, status *models.ReportStatus) ([]*models.WeeklyReport, error) {
	where := squirrel.Eq{"pg.guide_id": guideID}
	if status != nil {
		where["wr.status"] = *status
	}
	return r.queryReports(ctx, r.selectReports().
		Where(where).
		OrderBy("wr.submitted_at DESC"))
}

// SaveFeedback stores feedback and marks and marks the report reviewed
func (r *ReportRepository) SaveFeedback(ctx context.Context, id int64, feedback string, marks *int) error {
	sql, args, err := r.sb.Update("weekly_reports").
		Set("feedback", feedback).
		Set("marks", marks).
		Set("status", models.ReportReviewed).
		Set("reviewed_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewValidationError("Marks must be between 0 and 100.")
		}
		return fmt.Errorf("error saving report feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}
