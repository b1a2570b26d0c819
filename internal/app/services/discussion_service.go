package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/websocket"
)

// discussionHistoryLimit caps how many messages a thread returns
const discussionHistoryLimit = 100

// DiscussionPayload is the data of a discussion:message event
type DiscussionPayload struct {
	MessageID  int64       `json:"message_id"`
	SenderID   int64       `json:"sender_id"`
	SenderRole models.Role `json:"sender_role"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
}

// DiscussionService handles group discussion threads
type DiscussionService struct {
	messages DiscussionStore
	groups   GroupStore
	students StudentStore
	staff    StaffStore
	authz    GroupAuthorizer
	emitter  websocket.Emitter
	notifier Notifier
	logger   zerolog.Logger
}

// NewDiscussionService creates a new DiscussionService
func NewDiscussionService(
	messages DiscussionStore,
	groups GroupStore,
	students StudentStore,
	staff StaffStore,
	authz GroupAuthorizer,
	emitter websocket.Emitter,
	notifier Notifier,
	logger zerolog.Logger,
) *DiscussionService {
	return &DiscussionService{
		messages: messages,
		groups:   groups,
		students: students,
		staff:    staff,
		authz:    authz,
		emitter:  emitter,
		notifier: notifier,
		logger:   logger.With().Str("service", "discussion").Logger(),
	}
}

// Messages returns a group's thread, oldest first
func (s *DiscussionService) Messages(ctx context.Context, groupID, userID int64, role models.Role) ([]*models.DiscussionMessage, error) {
	if err := s.authz.ValidateGroupAccess(ctx, groupID, userID, role); err != nil {
		return nil, err
	}
	return s.messages.ListByGroup(ctx, groupID, discussionHistoryLimit)
}

func (s *DiscussionService) senderName(ctx context.Context, userID int64, role models.Role) string {
	if role == models.RoleStudent {
		if st, err := s.students.GetByID(ctx, userID); err == nil {
			return st.Name
		}
	} else if staff, err := s.staff.GetByID(ctx, userID); err == nil {
		return staff.Name
	}
	return "Someone"
}

// Post stores a message, pushes it to the group room and notifies the student members
func (s *DiscussionService) Post(ctx context.Context, groupID, userID int64, role models.Role, content string) (*models.DiscussionMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("Message cannot be empty.")
	}
	if err := s.authz.ValidateGroupAccess(ctx, groupID, userID, role); err != nil {
		return nil, err
	}

	msg := &models.DiscussionMessage{
		GroupID:    groupID,
		SenderID:   userID,
		SenderRole: role,
		Content:    content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	msg.SenderName = s.senderName(ctx, userID, role)

	s.emitter.Emit(websocket.GroupRoom(groupID), websocket.EventDiscussionMessage, DiscussionPayload{
		MessageID:  msg.ID,
		SenderID:   msg.SenderID,
		SenderRole: msg.SenderRole,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
	})

	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		s.logger.Error().Err(err).Int64("groupID", groupID).Msg("Failed to load members for discussion notification")
		return msg, nil
	}
	var skip int64
	if role == models.RoleStudent {
		skip = userID
	}
	notifyStudents(ctx, s.notifier, members, skip, "New Discussion Message",
		fmt.Sprintf("%s sent a message in the group discussion.", msg.SenderName),
		"/dashboard/student/discussion")
	return msg, nil
}

// Groups returns the groups the caller can open a discussion for: the guided groups of a
// faculty member, or the student's own group. A student without a group gets an empty list.
func (s *DiscussionService) Groups(ctx context.Context, userID int64, role models.Role) ([]models.GroupSummary, error) {
	switch role {
	case models.RoleFaculty:
		groups, err := s.groups.ListByGuide(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]models.GroupSummary, 0, len(groups))
		for _, g := range groups {
			out = append(out, models.GroupSummary{ID: g.ID, Name: g.Name, ProjectTitle: g.ProjectTitle, Status: g.Status, CreatedAt: g.CreatedAt})
		}
		return out, nil
	case models.RoleStudent:
		m, err := s.groups.GetMembership(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotInGroup) {
				return []models.GroupSummary{}, nil
			}
			return nil, err
		}
		g, err := s.groups.GetByID(ctx, m.GroupID)
		if err != nil {
			return nil, err
		}
		return []models.GroupSummary{{ID: g.ID, Name: g.Name, ProjectTitle: g.ProjectTitle, Status: g.Status, CreatedAt: g.CreatedAt}}, nil
	default:
		return []models.GroupSummary{}, nil
	}
}
