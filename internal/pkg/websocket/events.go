package websocket

import (
	"encoding/json"
	"strconv"

	"github.com/yigit/projecthub/internal/app/models"
)

// Server events
const (
	EventNotification      = "notification:new"
	EventDiscussionMessage = "discussion:message"
	EventJoined            = "joined"
	EventError             = "error"
)

// Client actions
const (
	ActionJoinUser   = "join:user"
	ActionJoinGroup  = "join:group"
	ActionLeaveGroup = "leave:group"
)

// Frame is the JSON envelope of every message in both directions
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Emitter delivers an event to every client in a room
type Emitter interface {
	Emit(room, event string, payload any)
}

// UserRoom is the personal room of one (role, id) account, e.g. "user:student:5"
func UserRoom(role models.Role, userID int64) string {
	return "user:" + string(role) + ":" + strconv.FormatInt(userID, 10)
}

// GroupRoom is the discussion room of a project group, e.g. "group:12"
func GroupRoom(groupID int64) string {
	return "group:" + strconv.FormatInt(groupID, 10)
}

func encodeFrame(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: data})
}
