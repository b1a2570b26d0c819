package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

type fakeInvitations struct {
	byID   map[int64]*models.Invitation
	groups *fakeGroups
	nextID int64
}

func (f *fakeInvitations) Create(_ context.Context, inv *models.Invitation) error {
	for _, existing := range f.byID {
		if existing.GroupID == inv.GroupID && existing.Email == inv.Email {
			return apperrors.ErrDuplicateInvite
		}
	}
	f.nextID++
	inv.ID = f.nextID
	f.byID[inv.ID] = inv
	return nil
}

func (f *fakeInvitations) GetByID(_ context.Context, id int64) (*models.Invitation, error) {
	if inv, ok := f.byID[id]; ok {
		return inv, nil
	}
	return nil, apperrors.ErrInvitationNotFound
}

func (f *fakeInvitations) ListPendingByEmail(_ context.Context, email string) ([]*models.Invitation, error) {
	out := []*models.Invitation{}
	for _, inv := range f.byID {
		if inv.Email == email && inv.Status == models.InvitationPending {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvitations) Accept(ctx context.Context, inv *models.Invitation, studentID int64) error {
	if inv.Status != models.InvitationPending {
		return apperrors.NewConflictError("Invitation already responded to.")
	}
	if _, err := f.groups.GetMembership(ctx, studentID); err == nil {
		return apperrors.ErrAlreadyInGroup
	}
	inv.Status = models.InvitationAccepted
	f.groups.members[inv.GroupID] = append(f.groups.members[inv.GroupID], models.GroupMember{StudentID: studentID})
	return nil
}

func (f *fakeInvitations) UpdateStatus(_ context.Context, id int64, status models.InvitationStatus) error {
	f.byID[id].Status = status
	return nil
}

type invitationFixture struct {
	svc         *InvitationService
	groups      *fakeGroups
	invitations *fakeInvitations
	notifier    *fakeNotifier
}

func newInvitationFixture() *invitationFixture {
	groups := newFakeGroups()
	groups.add(1, nil, 10, 11)
	groups.add(2, nil, 20)
	students := newFakeStudents(
		&models.Student{ID: 10, Name: "Leader", Email: "leader@uni.edu"},
		&models.Student{ID: 11, Name: "Member", Email: "member@uni.edu"},
		&models.Student{ID: 12, Name: "Free", Email: "free@uni.edu"},
		&models.Student{ID: 20, Name: "Other Leader", Email: "other@uni.edu"},
	)
	invitations := &fakeInvitations{byID: map[int64]*models.Invitation{}, groups: groups}
	notifier := &fakeNotifier{}
	return &invitationFixture{
		svc:         NewInvitationService(invitations, groups, students, notifier, testLogger),
		groups:      groups,
		invitations: invitations,
		notifier:    notifier,
	}
}

func messageOf(err error) string {
	msg, _ := apperrors.Message(err)
	return msg
}

func TestInviteRules(t *testing.T) {
	f := newInvitationFixture()
	ctx := context.Background()

	_, err := f.svc.Invite(ctx, 11, "free@uni.edu")
	assert.Equal(t, "Only group leaders can invite members.", messageOf(err))

	_, err = f.svc.Invite(ctx, 12, "leader@uni.edu")
	assert.Equal(t, "Only group leaders can invite members.", messageOf(err))

	_, err = f.svc.Invite(ctx, 10, "ghost@uni.edu")
	assert.Equal(t, "Student not found with this email.", messageOf(err))

	_, err = f.svc.Invite(ctx, 10, "other@uni.edu")
	assert.Equal(t, "Student is already in a group.", messageOf(err))

	inv, err := f.svc.Invite(ctx, 10, " Free@Uni.edu ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), inv.GroupID)
	assert.Equal(t, models.InvitationPending, inv.Status)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Group Invitation", f.notifier.sent[0].title)
	assert.Equal(t, `You have been invited to join "Group 1".`, f.notifier.sent[0].message)

	_, err = f.svc.Invite(ctx, 10, "free@uni.edu")
	assert.Equal(t, "Failed to send invitation. Check if already invited.", messageOf(err))
}

func TestRespondAccept(t *testing.T) {
	f := newInvitationFixture()
	ctx := context.Background()
	inv, err := f.svc.Invite(ctx, 10, "free@uni.edu")
	require.NoError(t, err)

	pending, err := f.svc.ListPending(ctx, 12)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	err = f.svc.Respond(ctx, 11, inv.ID, "accept")
	assert.Equal(t, "Invitation not found or not for you.", messageOf(err))

	require.NoError(t, f.svc.Respond(ctx, 12, inv.ID, "accept"))
	m, err := f.groups.GetMembership(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.GroupID)
	assert.False(t, m.IsLeader)

	last := f.notifier.sent[len(f.notifier.sent)-1]
	assert.Equal(t, int64(10), last.userID)
	assert.Equal(t, "Invitation Accepted", last.title)

	err = f.svc.Respond(ctx, 12, inv.ID, "reject")
	assert.Equal(t, "Invitation already responded to.", messageOf(err))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRespondReject(t *testing.T) {
	f := newInvitationFixture()
	ctx := context.Background()
	inv, err := f.svc.Invite(ctx, 10, "free@uni.edu")
	require.NoError(t, err)

	require.NoError(t, f.svc.Respond(ctx, 12, inv.ID, "reject"))
	assert.Equal(t, models.InvitationRejected, f.invitations.byID[inv.ID].Status)
	_, err = f.groups.GetMembership(ctx, 12)
	assert.ErrorIs(t, err, apperrors.ErrNotInGroup)

	err = f.svc.Respond(ctx, 12, 999, "accept")
	assert.Equal(t, "Invitation not found or not for you.", messageOf(err))
}
