package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
)

// GroupAuthorizer decides whether an account may follow a group's room
type GroupAuthorizer interface {
	CanAccessGroup(ctx context.Context, groupID, userID int64, role models.Role) (bool, error)
}

type joinUserPayload struct {
	UserID   int64       `json:"userId"`
	UserRole models.Role `json:"userRole"`
}

type groupPayload struct {
	GroupID int64 `json:"groupId"`
}

type errorPayload struct {
	Event   string `json:"event,omitempty"`
	Message string `json:"message"`
}

type joinedPayload struct {
	Room string `json:"room"`
}

// ActionHandler applies client actions (join:user, join:group, leave:group) to the hub
type ActionHandler struct {
	hub     *Hub
	authz   GroupAuthorizer
	timeout time.Duration
	logger  zerolog.Logger
}

// NewActionHandler creates a new ActionHandler
func NewActionHandler(hub *Hub, authz GroupAuthorizer, logger zerolog.Logger) *ActionHandler {
	return &ActionHandler{
		hub:     hub,
		authz:   authz,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

// Handle processes one frame received from c
func (h *ActionHandler) Handle(c *Client, frame Frame) {
	switch frame.Event {
	case ActionJoinUser:
		var p joinUserPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			c.reply(EventError, errorPayload{Event: frame.Event, Message: "Invalid payload."})
			return
		}
		if p.UserID != c.userID || p.UserRole != c.role {
			c.reply(EventError, errorPayload{Event: frame.Event, Message: "You can only join your own notification room."})
			return
		}
		room := UserRoom(c.role, c.userID)
		h.hub.Join(c, room)
		c.reply(EventJoined, joinedPayload{Room: room})

	case ActionJoinGroup:
		var p groupPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.GroupID <= 0 {
			c.reply(EventError, errorPayload{Event: frame.Event, Message: "Invalid payload."})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		allowed, err := h.authz.CanAccessGroup(ctx, p.GroupID, c.userID, c.role)
		cancel()
		if err != nil {
			h.logger.Warn().Err(err).Int64("groupID", p.GroupID).Int64("userID", c.userID).Msg("Group access check failed")
		}
		if err != nil || !allowed {
			c.reply(EventError, errorPayload{Event: frame.Event, Message: "You do not have access to this group."})
			return
		}
		room := GroupRoom(p.GroupID)
		h.hub.Join(c, room)
		c.reply(EventJoined, joinedPayload{Room: room})

	case ActionLeaveGroup:
		var p groupPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			c.reply(EventError, errorPayload{Event: frame.Event, Message: "Invalid payload."})
			return
		}
		h.hub.Leave(c, GroupRoom(p.GroupID))

	default:
		c.reply(EventError, errorPayload{Event: frame.Event, Message: "Unknown event."})
	}
}
