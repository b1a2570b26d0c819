package services

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/auth"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

type groupFixture struct {
	svc      *GroupService
	groups   *fakeGroups
	notifier *fakeNotifier
	storage  *fakeStorage
}

func newGroupFixture() *groupFixture {
	groups := newFakeGroups()
	staff := newFakeStaff(
		&models.Staff{ID: 7, Name: "Dr. Kaya", Role: models.RoleFaculty},
		&models.Staff{ID: 8, Name: "Dr. Ak", Role: models.RoleFaculty},
		&models.Staff{ID: 9, Name: "Admin", Role: models.RoleAdmin},
	)
	notifier := &fakeNotifier{}
	storage := &fakeStorage{}
	svc := NewGroupService(groups, staff, auth.NewAuthorizationService(groups), notifier, storage, testLogger)
	return &groupFixture{svc: svc, groups: groups, notifier: notifier, storage: storage}
}

func validProposal() *dto.CreateGroupRequest {
	return &dto.CreateGroupRequest{
		GroupName:        "Team Rocket",
		ProjectTitle:     "Campus Navigation",
		ProjectTypeID:    1,
		GuideID:          7,
		Description:      strings.Repeat("d", 50),
		Objectives:       strings.Repeat("o", 30),
		Methodology:      strings.Repeat("m", 30),
		ExpectedOutcomes: strings.Repeat("e", 30),
		SkillsJSON:       `["Go", "go", " React "]`,
	}
}

func TestCreateGroup(t *testing.T) {
	f := newGroupFixture()
	req := validProposal()
	req.ProposalFile = &multipart.FileHeader{Filename: "plan (v1).pdf", Size: 100}

	g, err := f.svc.CreateGroup(context.Background(), 10, req)
	require.NoError(t, err)
	assert.Equal(t, models.GroupStatusPending, g.Status)
	assert.Equal(t, []string{"Go", "React"}, g.Skills)
	assert.NotNil(t, g.ProposalSubmittedAt)
	require.NotNil(t, g.ProposalFilePath)
	assert.Equal(t, "/uploads/proposals/1700000000000-planv1.pdf", *g.ProposalFilePath)

	m, err := f.groups.GetMembership(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, m.IsLeader)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, int64(7), f.notifier.sent[0].userID)
	assert.Equal(t, models.RoleFaculty, f.notifier.sent[0].role)
	assert.Equal(t, "New Proposal Submitted", f.notifier.sent[0].title)
}

func TestCreateGroupRejectsMemberAndShortFields(t *testing.T) {
	f := newGroupFixture()
	f.groups.add(1, nil, 10)

	_, err := f.svc.CreateGroup(context.Background(), 10, validProposal())
	msg, _ := apperrors.Message(err)
	assert.Equal(t, "You are already in a group.", msg)

	req := validProposal()
	req.Objectives = "too short"
	_, err = f.svc.CreateGroup(context.Background(), 11, req)
	msg, _ = apperrors.Message(err)
	assert.Equal(t, "Objectives must be at least 30 characters.", msg)
	assert.Empty(t, f.notifier.sent)
}

func TestCreateGroupRequiresFacultyGuide(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()

	for _, guideID := range []int64{9, 99} {
		req := validProposal()
		req.GuideID = guideID
		_, err := f.svc.CreateGroup(ctx, 10, req)
		msg, _ := apperrors.Message(err)
		assert.Equal(t, "Selected guide is not a faculty member.", msg)
	}

	_, err := f.groups.GetMembership(ctx, 10)
	assert.ErrorIs(t, err, apperrors.ErrNotInGroup)
	assert.Empty(t, f.notifier.sent)
}

func TestCreateGroupInvalidSkillsJSON(t *testing.T) {
	req := validProposal()
	req.SkillsJSON = "not json"
	assert.Empty(t, proposalSkills(req))

	req.Skills = []string{"Go"}
	assert.Equal(t, []string{"Go"}, proposalSkills(req))
}

func TestMyGroup(t *testing.T) {
	f := newGroupFixture()
	f.groups.add(1, nil, 10, 11)

	g, err := f.svc.MyGroup(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.ID)
	assert.Equal(t, 2, g.MemberCount)

	g, err = f.svc.MyGroup(context.Background(), 12)
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestAssignGuideAsLeader(t *testing.T) {
	f := newGroupFixture()
	f.groups.add(1, nil, 10, 11)
	ctx := context.Background()

	err := f.svc.AssignGuideAsLeader(ctx, 11, 7)
	msg, _ := apperrors.Message(err)
	assert.Equal(t, "Only the group leader can assign a guide.", msg)

	err = f.svc.AssignGuideAsLeader(ctx, 10, 9)
	msg, _ = apperrors.Message(err)
	assert.Equal(t, "Selected guide is not a faculty member.", msg)

	require.NoError(t, f.svc.AssignGuideAsLeader(ctx, 10, 7))
	assert.Equal(t, int64(7), *f.groups.groups[1].GuideID)
	assert.Equal(t, []int64{7}, f.notifier.recipients())
}

func TestAssignGuideAsAdmin(t *testing.T) {
	f := newGroupFixture()
	f.groups.add(1, nil, 10)

	require.NoError(t, f.svc.AssignGuideAsAdmin(context.Background(), 1, 8))
	assert.Equal(t, int64(8), *f.groups.groups[1].GuideID)
	assert.ErrorIs(t, f.svc.AssignGuideAsAdmin(context.Background(), 2, 8), apperrors.ErrGroupNotFound)
}

func TestReviewGroup(t *testing.T) {
	f := newGroupFixture()
	f.groups.add(1, ptr(int64(7)), 10, 11)
	ctx := context.Background()

	err := f.svc.ReviewGroup(ctx, 1, 8, models.RoleFaculty, &dto.ReviewGroupRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, f.svc.ReviewGroup(ctx, 1, 7, models.RoleFaculty, &dto.ReviewGroupRequest{Action: "reject", RejectionReason: "Scope too wide"}))
	g := f.groups.groups[1]
	assert.Equal(t, models.GroupStatusRejected, g.Status)
	assert.Equal(t, "Scope too wide", *g.RejectionReason)
	assert.Equal(t, []int64{10, 11}, f.notifier.recipients())
	assert.Equal(t, "Proposal Rejected", f.notifier.sent[0].title)

	require.NoError(t, f.svc.ReviewGroup(ctx, 1, 9, models.RoleAdmin, &dto.ReviewGroupRequest{Action: "approve", RejectionReason: "ignored"}))
	assert.Equal(t, models.GroupStatusApproved, g.Status)
	assert.Nil(t, g.RejectionReason)
	assert.Equal(t, int64(9), *g.ReviewedBy)
}

func TestGetGroupAccess(t *testing.T) {
	f := newGroupFixture()
	f.groups.add(1, ptr(int64(7)), 10)
	ctx := context.Background()

	_, err := f.svc.GetGroup(ctx, 1, 10, models.RoleStudent)
	assert.NoError(t, err)
	_, err = f.svc.GetGroup(ctx, 1, 7, models.RoleFaculty)
	assert.NoError(t, err)
	_, err = f.svc.GetGroup(ctx, 1, 12, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
