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

// InvitationRepository handles group invitations
type InvitationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func (r *InvitationRepository) selectInvitations() squirrel.SelectBuilder {
	return r.sb.Select("i.id", "i.group_id", "i.email", "i.invited_by", "i.status", "i.created_at",
		"pg.name", "pg.project_title", "s.name").
		From("project_invitations i").
		Join("project_groups pg ON pg.id = i.group_id").
		Join("students s ON s.id = i.invited_by")
}

func scanInvitation(row pgx.Row) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(&inv.ID, &inv.GroupID, &inv.Email, &inv.InvitedBy, &inv.Status, &inv.CreatedAt,
		&inv.GroupName, &inv.ProjectTitle, &inv.InviterName)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create stores a pending invitation. A repeated (group, email) pair fails with ErrDuplicateInvite.
func (r *InvitationRepository) Create(ctx context.Context, inv *models.Invitation) error {
	sql, args, err := r.sb.Insert("project_invitations").
		Columns("group_id", "email", "invited_by", "status").
		Values(inv.GroupID, inv.Email, inv.InvitedBy, models.InvitationPending).
		Suffix("RETURNING id, status, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&inv.ID, &inv.Status, &inv.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "project_invitations_group_id_email_key") {
			return apperrors.ErrDuplicateInvite
		}
		logger.Error().Err(err).Int64("groupID", inv.GroupID).Str("email", inv.Email).Msg("Error creating invitation")
		return fmt.Errorf("error creating invitation: %w", err)
	}
	return nil
}

// GetByID retrieves an invitation with its group and inviter names
func (r *InvitationRepository) GetByID(ctx context.Context, id int64) (*models.Invitation, error) {
	sql, args, err := r.selectInvitations().Where(squirrel.Eq{"i.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	inv, err := scanInvitation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error retrieving invitation: %w", err)
	}
	return inv, nil
}

// ListPendingByEmail returns the pending invitations addressed to email, newest first
func (r *InvitationRepository) ListPendingByEmail(ctx context.Context, email string) ([]*models.Invitation, error) {
	sql, args, err := r.selectInvitations().
		Where(squirrel.Eq{"i.email": email, "i.status": models.InvitationPending}).
		OrderBy("i.created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing invitations: %w", err)
	}
	defer rows.Close()

	invitations := make([]*models.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// Accept marks a pending invitation accepted and adds the student as a non-leader member in one transaction
func (r *InvitationRepository) Accept(ctx context.Context, inv *models.Invitation, studentID int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE project_invitations SET status = $1 WHERE id = $2 AND status = $3`,
			models.InvitationAccepted, inv.ID, models.InvitationPending)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewConflictError("Invitation already responded to.")
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO project_group_members (group_id, student_id, is_leader) VALUES ($1, $2, FALSE)`,
			inv.GroupID, studentID)
		return err
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "project_group_members_student_id_key") {
			return apperrors.ErrAlreadyInGroup
		}
		var msgErr *apperrors.CustomError
		if errors.As(err, &msgErr) {
			return err
		}
		return fmt.Errorf("error accepting invitation: %w", err)
	}
	inv.Status = models.InvitationAccepted
	return nil
}

// UpdateStatus sets the status of a pending invitation
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE project_invitations SET status = $1 WHERE id = $2 AND status = $3`,
		status, id, models.InvitationPending)
	if err != nil {
		return fmt.Errorf("error updating invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("Invitation already responded to.")
	}
	return nil
}
