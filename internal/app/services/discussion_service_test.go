package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/auth"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/websocket"
)

type fakeDiscussion struct {
	items  []*models.DiscussionMessage
	nextID int64
}

func (f *fakeDiscussion) Create(_ context.Context, msg *models.DiscussionMessage) error {
	f.nextID++
	msg.ID = f.nextID
	msg.CreatedAt = time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	f.items = append(f.items, msg)
	return nil
}

func (f *fakeDiscussion) ListByGroup(_ context.Context, groupID int64, limit int) ([]*models.DiscussionMessage, error) {
	out := []*models.DiscussionMessage{}
	for _, m := range f.items {
		if m.GroupID == groupID && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

type discussionFixture struct {
	svc      *DiscussionService
	messages *fakeDiscussion
	emitter  *fakeEmitter
	notifier *fakeNotifier
}

func newDiscussionFixture() *discussionFixture {
	groups := newFakeGroups()
	groups.add(1, ptr(int64(7)), 10, 11, 12)
	groups.add(2, nil, 20)
	students := newFakeStudents(&models.Student{ID: 10, Name: "Ayşe"}, &models.Student{ID: 11, Name: "Can"})
	staff := newFakeStaff(&models.Staff{ID: 7, Name: "Dr. Kaya", Role: models.RoleFaculty})
	f := &discussionFixture{messages: &fakeDiscussion{}, emitter: &fakeEmitter{}, notifier: &fakeNotifier{}}
	f.svc = NewDiscussionService(f.messages, groups, students, staff, auth.NewAuthorizationService(groups), f.emitter, f.notifier, testLogger)
	return f
}

func TestPostDiscussionMessageFromStudent(t *testing.T) {
	f := newDiscussionFixture()
	ctx := context.Background()

	msg, err := f.svc.Post(ctx, 1, 10, models.RoleStudent, "  Pushed the schema draft  ")
	require.NoError(t, err)
	assert.Equal(t, "Pushed the schema draft", msg.Content)
	assert.Equal(t, "Ayşe", msg.SenderName)

	require.Len(t, f.emitter.events, 1)
	ev := f.emitter.events[0]
	assert.Equal(t, websocket.GroupRoom(1), ev.room)
	assert.Equal(t, websocket.EventDiscussionMessage, ev.event)
	payload, ok := ev.payload.(DiscussionPayload)
	require.True(t, ok)
	assert.Equal(t, msg.ID, payload.MessageID)
	assert.Equal(t, models.RoleStudent, payload.SenderRole)

	assert.Equal(t, []int64{11, 12}, f.notifier.recipients())
	assert.Equal(t, "Ayşe sent a message in the group discussion.", f.notifier.sent[0].message)
}

func TestPostDiscussionMessageFromGuideNotifiesAllStudents(t *testing.T) {
	f := newDiscussionFixture()

	_, err := f.svc.Post(context.Background(), 1, 7, models.RoleFaculty, "Please add tests")
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 12}, f.notifier.recipients())
	assert.Equal(t, "Dr. Kaya sent a message in the group discussion.", f.notifier.sent[0].message)
}

func TestPostDiscussionMessageRejected(t *testing.T) {
	f := newDiscussionFixture()
	ctx := context.Background()

	_, err := f.svc.Post(ctx, 1, 10, models.RoleStudent, "   ")
	assert.Equal(t, "Message cannot be empty.", messageOf(err))

	_, err = f.svc.Post(ctx, 1, 20, models.RoleStudent, "hello")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.Post(ctx, 2, 7, models.RoleFaculty, "hello")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	assert.Empty(t, f.messages.items)
	assert.Empty(t, f.emitter.events)
}

func TestDiscussionMessagesAndGroups(t *testing.T) {
	f := newDiscussionFixture()
	ctx := context.Background()
	_, err := f.svc.Post(ctx, 1, 11, models.RoleStudent, "First")
	require.NoError(t, err)

	msgs, err := f.svc.Messages(ctx, 1, 1, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	_, err = f.svc.Messages(ctx, 1, 20, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	groups, err := f.svc.Groups(ctx, 7, models.RoleFaculty)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(1), groups[0].ID)

	groups, err = f.svc.Groups(ctx, 12, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Group 1", groups[0].Name)

	groups, err = f.svc.Groups(ctx, 99, models.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
