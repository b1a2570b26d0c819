package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/auth"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

type fakeMeetings struct {
	byID       map[int64]*models.Meeting
	attendance map[int64][]models.Attendance
	nextID     int64
}

func newFakeMeetings() *fakeMeetings {
	return &fakeMeetings{byID: map[int64]*models.Meeting{}, attendance: map[int64][]models.Attendance{}}
}

func (f *fakeMeetings) Create(_ context.Context, m *models.Meeting) error {
	f.nextID++
	m.ID = f.nextID
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMeetings) GetByID(_ context.Context, id int64) (*models.Meeting, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrMeetingNotFound
	}
	m.Attendance = f.attendance[id]
	return m, nil
}

func (f *fakeMeetings) Update(_ context.Context, m *models.Meeting) error {
	if _, ok := f.byID[m.ID]; !ok {
		return apperrors.ErrMeetingNotFound
	}
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMeetings) ListByGuide(_ context.Context, guideID int64) ([]*models.Meeting, error) {
	out := []*models.Meeting{}
	for _, m := range f.byID {
		if m.GuideID == guideID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetings) ListByGroup(_ context.Context, groupID, _ int64) ([]*models.Meeting, error) {
	out := []*models.Meeting{}
	for _, m := range f.byID {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetings) ListAll(_ context.Context) ([]*models.Meeting, error) {
	out := []*models.Meeting{}
	for _, m := range f.byID {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMeetings) RecordAttendance(_ context.Context, meetingID int64, entries []models.Attendance) error {
	m := f.byID[meetingID]
	now := time.Now()
	m.Status, m.StatusDatetime = models.MeetingCompleted, &now
	f.attendance[meetingID] = entries
	return nil
}

func newMeetingFixture() (*MeetingService, *fakeMeetings, *fakeNotifier) {
	groups := newFakeGroups()
	groups.add(1, ptr(int64(7)), 10, 11)
	meetings := newFakeMeetings()
	notifier := &fakeNotifier{}
	return NewMeetingService(meetings, groups, auth.NewAuthorizationService(groups), notifier, testLogger), meetings, notifier
}

func TestScheduleMeeting(t *testing.T) {
	svc, _, notifier := newMeetingFixture()
	ctx := context.Background()

	_, err := svc.Schedule(ctx, 7, models.RoleFaculty, &dto.CreateMeetingRequest{ProjectGroupID: 1, MeetingDate: "2025-03-04T10:30", Purpose: "ab"})
	assert.Equal(t, "Purpose must be at least 3 characters.", messageOf(err))

	_, err = svc.Schedule(ctx, 7, models.RoleFaculty, &dto.CreateMeetingRequest{ProjectGroupID: 1, MeetingDate: "someday", Purpose: "Sprint review"})
	assert.Equal(t, "Invalid meeting date.", messageOf(err))

	_, err = svc.Schedule(ctx, 8, models.RoleFaculty, &dto.CreateMeetingRequest{ProjectGroupID: 1, MeetingDate: "2025-03-04T10:30", Purpose: "Sprint review"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	m, err := svc.Schedule(ctx, 7, models.RoleFaculty, &dto.CreateMeetingRequest{
		ProjectGroupID: 1, MeetingDate: "2025-03-04T10:30", Purpose: "Sprint review", Location: "Lab 2",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MeetingScheduled, m.Status)
	assert.Equal(t, "Lab 2", *m.Location)
	assert.Equal(t, []int64{10, 11}, notifier.recipients())
	assert.Equal(t, "New Meeting Scheduled", notifier.sent[0].title)
}

func TestUpdateMeetingStatus(t *testing.T) {
	svc, meetings, _ := newMeetingFixture()
	ctx := context.Background()
	m, err := svc.Schedule(ctx, 7, models.RoleFaculty, &dto.CreateMeetingRequest{ProjectGroupID: 1, MeetingDate: "2025-03-04T10:30", Purpose: "Sprint review"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, m.ID, 7, models.RoleFaculty, &dto.UpdateMeetingRequest{MeetingDate: "2025-03-05T11:00", Purpose: "Sprint review", Status: "postponed"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	got, err := svc.Update(ctx, m.ID, 7, models.RoleFaculty, &dto.UpdateMeetingRequest{
		MeetingDate: "2025-03-05T11:00", Purpose: "Sprint review", Status: "cancelled", StatusDescription: "Guide travelling",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MeetingCancelled, got.Status)
	assert.NotNil(t, got.StatusDatetime)
	assert.Equal(t, 5, got.MeetingDate.Day())

	got, err = svc.Update(ctx, m.ID, 7, models.RoleFaculty, &dto.UpdateMeetingRequest{MeetingDate: "2025-03-06T11:00", Purpose: "Sprint review"})
	require.NoError(t, err)
	assert.Equal(t, models.MeetingScheduled, got.Status)

	_, err = svc.Update(ctx, 42, 7, models.RoleFaculty, &dto.UpdateMeetingRequest{MeetingDate: "2025-03-06T11:00", Purpose: "Sprint review"})
	assert.ErrorIs(t, err, apperrors.ErrMeetingNotFound)
	assert.Len(t, meetings.byID, 1)
}

func TestRecordAttendance(t *testing.T) {
	svc, _, _ := newMeetingFixture()
	ctx := context.Background()
	m, err := svc.Schedule(ctx, 7, models.RoleFaculty, &dto.CreateMeetingRequest{ProjectGroupID: 1, MeetingDate: "2025-03-04T10:30", Purpose: "Sprint review"})
	require.NoError(t, err)

	_, err = svc.RecordAttendance(ctx, m.ID, 7, models.RoleFaculty, []dto.AttendanceEntry{{StudentID: 99, IsPresent: true}})
	assert.Equal(t, "Student 99 is not a member of this group.", messageOf(err))

	got, err := svc.RecordAttendance(ctx, m.ID, 7, models.RoleFaculty, []dto.AttendanceEntry{
		{StudentID: 10, IsPresent: true},
		{StudentID: 11, IsPresent: false, Remarks: "sick"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MeetingCompleted, got.Status)
	require.Len(t, got.Attendance, 2)
	assert.Equal(t, "sick", *got.Attendance[1].Remarks)
}

func TestRecordEmptyAttendanceCompletesMeeting(t *testing.T) {
	svc, meetings, _ := newMeetingFixture()
	ctx := context.Background()
	m, err := svc.Schedule(ctx, 7, models.RoleFaculty, &dto.CreateMeetingRequest{ProjectGroupID: 1, MeetingDate: "2025-03-04T10:30", Purpose: "Kickoff"})
	require.NoError(t, err)

	got, err := svc.RecordAttendance(ctx, m.ID, 7, models.RoleFaculty, []dto.AttendanceEntry{})
	require.NoError(t, err)
	assert.Equal(t, models.MeetingCompleted, got.Status)
	assert.Empty(t, meetings.attendance[m.ID])
}

func TestListMeetingsForStudent(t *testing.T) {
	svc, _, _ := newMeetingFixture()
	ctx := context.Background()
	_, err := svc.Schedule(ctx, 7, models.RoleFaculty, &dto.CreateMeetingRequest{ProjectGroupID: 1, MeetingDate: "2025-03-04T10:30", Purpose: "Sprint review"})
	require.NoError(t, err)

	list, err := svc.ListForStudent(ctx, 11)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.ListForStudent(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, list)
}
