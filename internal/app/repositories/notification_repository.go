package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

// NotificationRepository stores in-app notifications
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

// Create stores a notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	sql, args, err := r.sb.Insert("notifications").
		Columns("user_id", "user_role", "title", "message", "link").
		Values(n.UserID, n.UserRole, n.Title, n.Message, n.Link).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// ListRecent returns the latest notifications of a (user, role) recipient
func (r *NotificationRepository) ListRecent(ctx context.Context, userID int64, role models.Role, limit int) ([]*models.Notification, error) {
	sql, args, err := r.sb.Select("id", "user_id", "user_role", "title", "message", "link", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "user_role": role}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.UserRole, &n.Title, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CountUnread counts a recipient's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64, role models.Role) (int64, error) {
	total, err := count(ctx, r.db, r.sb.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "user_role": role, "is_read": false}))
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return total, nil
}

// MarkRead marks one of the recipient's notifications read
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64, role models.Role) error {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID, "user_role": role}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the recipient read and returns how many changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64, role models.Role) (int64, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "user_role": role, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
