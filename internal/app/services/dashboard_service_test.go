package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/models"
)

type fakeDashboards struct {
	guideID int64
}

func (f *fakeDashboards) Admin(_ context.Context) (*models.AdminDashboard, error) {
	return &models.AdminDashboard{StudentCount: 3, GroupCount: 1}, nil
}

func (f *fakeDashboards) Faculty(_ context.Context, guideID int64, _ time.Time) (*models.FacultyDashboard, error) {
	f.guideID = guideID
	return &models.FacultyDashboard{GuidedGroupCount: 1}, nil
}

func TestAdminDashboardIncludesFaculty(t *testing.T) {
	staff := newFakeStaff(&models.Staff{ID: 7, Name: "Dr. Kaya", Role: models.RoleFaculty}, &models.Staff{ID: 1, Name: "Root", Role: models.RoleAdmin})
	svc := NewDashboardService(&fakeDashboards{}, staff, newFakeGroups(), nil, nil, &fakeNotifications{}, nil)

	d, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.StudentCount)
	require.Len(t, d.Faculty, 1)
	assert.Equal(t, int64(7), d.Faculty[0].ID)
}

func TestStudentDashboard(t *testing.T) {
	groups := newFakeGroups()
	groups.add(1, ptr(int64(7)), 10, 11)
	reports := &fakeReports{byID: map[int64]*models.WeeklyReport{}, groups: groups}
	meetings := newFakeMeetings()
	notifications := &fakeNotifications{}
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, reports.Create(ctx, &models.WeeklyReport{GroupID: 1, WeekNumber: 1, Status: models.ReportReviewed}))
	require.NoError(t, reports.Create(ctx, &models.WeeklyReport{GroupID: 1, WeekNumber: 2, Status: models.ReportPending}))
	for _, m := range []*models.Meeting{
		{GroupID: 1, MeetingDate: now.Add(-24 * time.Hour), Status: models.MeetingScheduled},
		{GroupID: 1, MeetingDate: now.Add(72 * time.Hour), Status: models.MeetingScheduled},
		{GroupID: 1, MeetingDate: now.Add(24 * time.Hour), Status: models.MeetingCancelled},
		{GroupID: 1, MeetingDate: now.Add(48 * time.Hour), Status: models.MeetingScheduled, Purpose: "next"},
	} {
		require.NoError(t, meetings.Create(ctx, m))
	}
	require.NoError(t, notifications.Create(ctx, &models.Notification{UserID: 11, UserRole: models.RoleStudent}))

	svc := NewDashboardService(&fakeDashboards{}, newFakeStaff(), groups, reports, meetings, notifications, nil)
	svc.now = func() time.Time { return now }

	d, err := svc.Student(ctx, 11)
	require.NoError(t, err)
	require.NotNil(t, d.Group)
	assert.Equal(t, "Group 1", d.Group.Name)
	assert.False(t, d.IsLeader)
	assert.Equal(t, 2, d.ReportCount)
	assert.Equal(t, 1, d.ReviewedReportCount)
	require.NotNil(t, d.NextMeeting)
	assert.Equal(t, "next", d.NextMeeting.Purpose)
	assert.Equal(t, int64(1), d.UnreadNotifications)

	d, err = svc.Student(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, d.Group)
	assert.Nil(t, d.NextMeeting)
}

func TestFacultyDashboardPassesGuide(t *testing.T) {
	store := &fakeDashboards{}
	svc := NewDashboardService(store, newFakeStaff(), newFakeGroups(), nil, nil, &fakeNotifications{}, nil)

	d, err := svc.Faculty(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.GuidedGroupCount)
	assert.Equal(t, int64(7), store.guideID)
}
