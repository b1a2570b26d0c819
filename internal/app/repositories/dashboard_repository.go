package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
)

// DashboardRepository runs the aggregate queries behind the dashboards
type DashboardRepository struct {
	db *pgxpool.Pool
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) groupSummaries(ctx context.Context, sql string, args ...any) ([]models.GroupSummary, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]models.GroupSummary, 0)
	for rows.Next() {
		var g models.GroupSummary
		if err := rows.Scan(&g.ID, &g.Name, &g.ProjectTitle, &g.Status, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Admin returns system-wide counts and the five newest groups without a guide
func (r *DashboardRepository) Admin(ctx context.Context) (*models.AdminDashboard, error) {
	var d models.AdminDashboard
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM staff WHERE role = 'faculty'),
			(SELECT COUNT(*) FROM project_groups),
			(SELECT COUNT(*) FROM project_groups WHERE status = 'pending'),
			(SELECT COUNT(*) FROM project_groups pg
			 WHERE NOT EXISTS (SELECT 1 FROM project_meetings pm WHERE pm.group_id = pg.id))`).
		Scan(&d.StudentCount, &d.FacultyCount, &d.GroupCount, &d.PendingGroupCount, &d.GroupsWithoutMeetings)
	if err != nil {
		return nil, fmt.Errorf("error loading admin dashboard counts: %w", err)
	}

	d.UnassignedGroups, err = r.groupSummaries(ctx, `
		SELECT id, name, project_title, status, created_at
		FROM project_groups
		WHERE guide_id IS NULL
		ORDER BY created_at DESC
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("error loading unassigned groups: %w", err)
	}
	return &d, nil
}

// Faculty returns a guide's counts and their first five groups by name
func (r *DashboardRepository) Faculty(ctx context.Context, guideID int64, now time.Time) (*models.FacultyDashboard, error) {
	var d models.FacultyDashboard
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM project_groups WHERE guide_id = $1),
			(SELECT COUNT(*) FROM project_meetings WHERE guide_id = $1 AND status = 'scheduled' AND meeting_date >= $2),
			(SELECT COUNT(*) FROM weekly_reports wr
			 JOIN project_groups pg ON pg.id = wr.group_id
			 WHERE pg.guide_id = $1 AND wr.status = 'pending')`, guideID, now).
		Scan(&d.GuidedGroupCount, &d.UpcomingMeetings, &d.PendingReportCount)
	if err != nil {
		return nil, fmt.Errorf("error loading faculty dashboard counts: %w", err)
	}

	d.Groups, err = r.groupSummaries(ctx, `
		SELECT id, name, project_title, status, created_at
		FROM project_groups
		WHERE guide_id = $1
		ORDER BY name
		LIMIT 5`, guideID)
	if err != nil {
		return nil, fmt.Errorf("error loading guided groups: %w", err)
	}
	return &d, nil
}
