package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
)

// DiscussionRepository stores group discussion messages
type DiscussionRepository struct {
	db *pgxpool.Pool
}

// NewDiscussionRepository creates a new discussion repository
func NewDiscussionRepository(db *pgxpool.Pool) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

// Create stores a message
func (r *DiscussionRepository) Create(ctx context.Context, msg *models.DiscussionMessage) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO discussion_messages (group_id, sender_id, sender_role, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		msg.GroupID, msg.SenderID, msg.SenderRole, msg.Content).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating discussion message: %w", err)
	}
	return nil
}

// ListByGroup returns the oldest limit messages of a group in ascending order with sender names
func (r *DiscussionRepository) ListByGroup(ctx context.Context, groupID int64, limit int) ([]*models.DiscussionMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT dm.id, dm.group_id, dm.sender_id, dm.sender_role, dm.content, dm.created_at,
		       COALESCE(CASE WHEN dm.sender_role = 'student' THEN s.name ELSE st.name END, '')
		FROM discussion_messages dm
		LEFT JOIN students s ON dm.sender_role = 'student' AND s.id = dm.sender_id
		LEFT JOIN staff st ON dm.sender_role <> 'student' AND st.id = dm.sender_id
		WHERE dm.group_id = $1
		ORDER BY dm.created_at ASC, dm.id ASC
		LIMIT $2`, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing discussion messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.DiscussionMessage, 0)
	for rows.Next() {
		var m models.DiscussionMessage
		if err := rows.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.SenderRole, &m.Content, &m.CreatedAt, &m.SenderName); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
