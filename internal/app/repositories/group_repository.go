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
	"github.com/yigit/projecthub/internal/db"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/dberrors"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

// GroupRepository handles project groups and their memberships
type GroupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

var groupColumns = []string{
	"pg.id", "pg.name", "pg.project_title", "pg.project_type_id", "pg.guide_id", "pg.department_id",
	"pg.academic_year_id", "pg.description", "pg.objectives", "pg.methodology", "pg.expected_outcomes",
	"pg.skills", "pg.proposal_file_path", "pg.proposal_submitted_at", "pg.proposal_reviewed_at",
	"pg.proposal_reviewed_by", "pg.rejection_reason", "pg.status", "pg.created_at",
	"pt.name", "g.name", "rv.name",
	"(SELECT COUNT(*) FROM project_group_members m WHERE m.group_id = pg.id)",
}

func (r *GroupRepository) selectGroups() squirrel.SelectBuilder {
	return r.sb.Select(groupColumns...).
		From("project_groups pg").
		LeftJoin("project_types pt ON pt.id = pg.project_type_id").
		LeftJoin("staff g ON g.id = pg.guide_id").
		LeftJoin("staff rv ON rv.id = pg.proposal_reviewed_by")
}

func scanGroup(row pgx.Row) (*models.ProjectGroup, error) {
	var g models.ProjectGroup
	err := row.Scan(
		&g.ID, &g.Name, &g.ProjectTitle, &g.ProjectTypeID, &g.GuideID, &g.DepartmentID,
		&g.AcademicYearID, &g.Description, &g.Objectives, &g.Methodology, &g.ExpectedOutcomes,
		&g.Skills, &g.ProposalFilePath, &g.ProposalSubmittedAt, &g.ReviewedAt,
		&g.ReviewedBy, &g.RejectionReason, &g.Status, &g.CreatedAt,
		&g.ProjectTypeName, &g.GuideName, &g.ReviewerName, &g.MemberCount,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) queryGroups(ctx context.Context, q squirrel.SelectBuilder) ([]*models.ProjectGroup, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build group query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying groups: %w", err)
	}
	defer rows.Close()

	groups := make([]*models.ProjectGroup, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CreateWithLeader inserts the group and the leader's membership in one transaction
func (r *GroupRepository) CreateWithLeader(ctx context.Context, group *models.ProjectGroup, leaderID int64) error {
	skills := group.Skills
	if skills == nil {
		skills = []string{}
	}
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("project_groups").
			Columns("name", "project_title", "project_type_id", "guide_id", "department_id", "academic_year_id",
				"description", "objectives", "methodology", "expected_outcomes", "skills",
				"proposal_file_path", "proposal_submitted_at", "status").
			Values(group.Name, group.ProjectTitle, group.ProjectTypeID, group.GuideID, group.DepartmentID, group.AcademicYearID,
				group.Description, group.Objectives, group.Methodology, group.ExpectedOutcomes, skills,
				group.ProposalFilePath, group.ProposalSubmittedAt, group.Status).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&group.ID, &group.CreatedAt); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO project_group_members (group_id, student_id, is_leader) VALUES ($1, $2, TRUE)`,
			group.ID, leaderID)
		return err
	})
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "project_group_members_student_id_key"):
			return apperrors.ErrAlreadyInGroup
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrReferenceNotExists
		}
		logger.Error().Err(err).Int64("leaderID", leaderID).Msg("Error creating project group")
		return fmt.Errorf("error creating project group: %w", err)
	}
	return nil
}

// GetByID retrieves a group with its joined names and members
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.ProjectGroup, error) {
	sql, args, err := r.selectGroups().Where(squirrel.Eq{"pg.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	group, err := scanGroup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving project group: %w", err)
	}

	members, err := r.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

// GetGuideID returns the guide of a group, nil when none is assigned
func (r *GroupRepository) GetGuideID(ctx context.Context, groupID int64) (*int64, error) {
	var guideID *int64
	err := r.db.QueryRow(ctx, `SELECT guide_id FROM project_groups WHERE id = $1`, groupID).Scan(&guideID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group guide: %w", err)
	}
	return guideID, nil
}

// GetMembership returns the group a student belongs to
func (r *GroupRepository) GetMembership(ctx context.Context, studentID int64) (*models.Membership, error) {
	var m models.Membership
	err := r.db.QueryRow(ctx,
		`SELECT group_id, is_leader FROM project_group_members WHERE student_id = $1`,
		studentID).Scan(&m.GroupID, &m.IsLeader)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotInGroup
		}
		return nil, fmt.Errorf("error retrieving membership: %w", err)
	}
	return &m, nil
}

// ListMembers returns a group's members, leader first
func (r *GroupRepository) ListMembers(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.name, s.email, s.skills, m.is_leader, m.joined_at
		FROM project_group_members m
		JOIN students s ON s.id = m.student_id
		WHERE m.group_id = $1
		ORDER BY m.is_leader DESC, s.name`, groupID)
	if err != nil {
		return nil, fmt.Errorf("error listing group members: %w", err)
	}
	defer rows.Close()

	members := make([]models.GroupMember, 0)
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.StudentID, &m.Name, &m.Email, &m.Skills, &m.IsLeader, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListByGuide returns the groups a faculty member guides, ordered by name
func (r *GroupRepository) ListByGuide(ctx context.Context, guideID int64) ([]*models.ProjectGroup, error) {
	return r.queryGroups(ctx, r.selectGroups().
		Where(squirrel.Eq{"pg.guide_id": guideID}).
		OrderBy("pg.name"))
}

func groupFilterWhere(filter models.GroupFilter) squirrel.Eq {
	where := squirrel.Eq{}
	if filter.Status != nil {
		where["pg.status"] = *filter.Status
	}
	if filter.DepartmentID != nil {
		where["pg.department_id"] = *filter.DepartmentID
	}
	if filter.AcademicYearID != nil {
		where["pg.academic_year_id"] = *filter.AcademicYearID
	}
	if filter.ProjectTypeID != nil {
		where["pg.project_type_id"] = *filter.ProjectTypeID
	}
	return where
}

// List returns one page of groups matching filter, newest first, and the total match count
func (r *GroupRepository) List(ctx context.Context, filter models.GroupFilter) ([]*models.ProjectGroup, int64, error) {
	where := groupFilterWhere(filter)

	total, err := count(ctx, r.db, r.sb.Select("COUNT(*)").From("project_groups pg").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("error counting groups: %w", err)
	}

	q := r.selectGroups().Where(where).OrderBy("pg.created_at DESC", "pg.id DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	groups, err := r.queryGroups(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// UpdateGuide sets a group's guide
func (r *GroupRepository) UpdateGuide(ctx context.Context, groupID, guideID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE project_groups SET guide_id = $1 WHERE id = $2`, guideID, groupID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStaffNotFound
		}
		return fmt.Errorf("error updating group guide: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}
	return nil
}

// Review records a proposal decision. The rejection reason is stored only for rejections.
func (r *GroupRepository) Review(ctx context.Context, groupID int64, status models.GroupStatus, reviewerID int64, reason *string) error {
	if status != models.GroupStatusRejected {
		reason = nil
	}
	sql, args, err := r.sb.Update("project_groups").
		Set("status", status).
		Set("proposal_reviewed_at", time.Now()).
		Set("proposal_reviewed_by", reviewerID).
		Set("rejection_reason", reason).
		Where(squirrel.Eq{"id": groupID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error reviewing group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}
	return nil
}
