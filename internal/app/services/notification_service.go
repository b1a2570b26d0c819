package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/helpers"
	"github.com/yigit/projecthub/internal/pkg/websocket"
)

// recentNotificationLimit is how many notifications the inbox shows
const recentNotificationLimit = 20

// NotificationPayload is the data of a notification:new event
type NotificationPayload struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Link    *string `json:"link"`
}

// NotificationCounter observes created notifications
type NotificationCounter interface {
	NotificationCreated()
}

// NotificationService stores notifications and pushes them to the recipient's room
type NotificationService struct {
	repo    NotificationStore
	emitter websocket.Emitter
	counter NotificationCounter
	logger  zerolog.Logger
}

// NewNotificationService creates a new NotificationService. counter may be nil.
func NewNotificationService(repo NotificationStore, emitter websocket.Emitter, counter NotificationCounter, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo:    repo,
		emitter: emitter,
		counter: counter,
		logger:  logger.With().Str("service", "notification").Logger(),
	}
}

// Create persists a notification and emits it to user:<role>:<id>
func (s *NotificationService) Create(ctx context.Context, userID int64, role models.Role, title, message, link string) (*models.Notification, error) {
	n := &models.Notification{
		UserID:   userID,
		UserRole: role,
		Title:    title,
		Message:  message,
		Link:     helpers.NullIfEmpty(link),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	if s.counter != nil {
		s.counter.NotificationCreated()
	}

	s.emitter.Emit(websocket.UserRoom(role, userID), websocket.EventNotification, NotificationPayload{
		Title:   n.Title,
		Message: n.Message,
		Link:    n.Link,
	})
	return n, nil
}

// Notify implements Notifier. Failures are logged and swallowed.
func (s *NotificationService) Notify(ctx context.Context, userID int64, role models.Role, title, message, link string) {
	if _, err := s.Create(ctx, userID, role, title, message, link); err != nil {
		s.logger.Error().Err(err).
			Int64("userID", userID).
			Str("role", string(role)).
			Str("title", title).
			Msg("Failed to create notification")
	}
}

// ListRecent returns the caller's latest notifications, newest first
func (s *NotificationService) ListRecent(ctx context.Context, userID int64, role models.Role) ([]*models.Notification, error) {
	return s.repo.ListRecent(ctx, userID, role, recentNotificationLimit)
}

// UnreadCount returns how many of the caller's notifications are unread
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64, role models.Role) (int64, error) {
	return s.repo.CountUnread(ctx, userID, role)
}

// MarkRead marks one of the caller's notifications read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64, role models.Role) error {
	if err := s.repo.MarkRead(ctx, id, userID, role); err != nil {
		if errors.Is(err, apperrors.ErrNotificationNotFound) {
			return apperrors.NewCustomError(apperrors.ErrNotificationNotFound, "Notification not found.")
		}
		return err
	}
	return nil
}

// MarkAllRead marks every notification of the caller read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64, role models.Role) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, role)
}

// notifyStudents sends the same notification to every member except skip
func notifyStudents(ctx context.Context, n Notifier, members []models.GroupMember, skip int64, title, message, link string) {
	for _, m := range members {
		if m.StudentID == skip {
			continue
		}
		n.Notify(ctx, m.StudentID, models.RoleStudent, title, message, link)
	}
}
