package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/helpers"
	"github.com/yigit/projecthub/internal/pkg/validation"
)

// MeetingService handles guide meetings and attendance
type MeetingService struct {
	meetings MeetingStore
	groups   GroupStore
	authz    GroupAuthorizer
	notifier Notifier
	now      func() time.Time
	logger   zerolog.Logger
}

// NewMeetingService creates a new MeetingService
func NewMeetingService(meetings MeetingStore, groups GroupStore, authz GroupAuthorizer, notifier Notifier, logger zerolog.Logger) *MeetingService {
	return &MeetingService{
		meetings: meetings,
		groups:   groups,
		authz:    authz,
		notifier: notifier,
		now:      time.Now,
		logger:   logger.With().Str("service", "meeting").Logger(),
	}
}

func parseMeetingFields(date, purpose string) (time.Time, string, error) {
	if !validation.MinLength(purpose, validation.MeetingPurposeMin) {
		return time.Time{}, "", apperrors.NewValidationError("Purpose must be at least 3 characters.")
	}
	when, err := helpers.ParseMeetingTime(strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, "", apperrors.NewValidationError("Invalid meeting date.")
	}
	return when, strings.TrimSpace(purpose), nil
}

// Schedule creates a meeting with one of the guide's groups and notifies its members
func (s *MeetingService) Schedule(ctx context.Context, guideID int64, role models.Role, req *dto.CreateMeetingRequest) (*models.Meeting, error) {
	when, purpose, err := parseMeetingFields(req.MeetingDate, req.Purpose)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateGuide(ctx, req.ProjectGroupID, guideID, role); err != nil {
		return nil, err
	}

	meeting := &models.Meeting{
		GroupID:     req.ProjectGroupID,
		GuideID:     guideID,
		MeetingDate: when,
		Purpose:     purpose,
		Location:    helpers.NullIfEmpty(req.Location),
		Description: helpers.NullIfEmpty(req.Description),
		Status:      models.MeetingScheduled,
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("meetingID", meeting.ID).Int64("groupID", meeting.GroupID).Msg("Meeting scheduled")

	members, err := s.groups.ListMembers(ctx, meeting.GroupID)
	if err != nil {
		s.logger.Error().Err(err).Int64("groupID", meeting.GroupID).Msg("Failed to load members for meeting notification")
		return meeting, nil
	}
	notifyStudents(ctx, s.notifier, members, 0, "New Meeting Scheduled",
		fmt.Sprintf("A meeting has been scheduled for %s: %s.", when.Format("02 Jan 2006 15:04"), purpose),
		"/dashboard/student/schedule")
	return meeting, nil
}

// loadOwned returns a meeting after checking the caller guides its group
func (s *MeetingService) loadOwned(ctx context.Context, meetingID, guideID int64, role models.Role) (*models.Meeting, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateGuide(ctx, meeting.GroupID, guideID, role); err != nil {
		return nil, err
	}
	return meeting, nil
}

// Update edits a meeting's details and sets its status. The status defaults to scheduled;
// status_datetime is stamped whenever a status is given.
func (s *MeetingService) Update(ctx context.Context, meetingID, guideID int64, role models.Role, req *dto.UpdateMeetingRequest) (*models.Meeting, error) {
	when, purpose, err := parseMeetingFields(req.MeetingDate, req.Purpose)
	if err != nil {
		return nil, err
	}

	status := models.MeetingScheduled
	if req.Status != "" {
		status = models.MeetingStatus(req.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("Status must be scheduled, completed or cancelled.")
		}
	}

	meeting, err := s.loadOwned(ctx, meetingID, guideID, role)
	if err != nil {
		return nil, err
	}

	meeting.MeetingDate = when
	meeting.Purpose = purpose
	meeting.Location = helpers.NullIfEmpty(req.Location)
	meeting.Description = helpers.NullIfEmpty(req.Description)
	meeting.Status = status
	meeting.StatusDescription = helpers.NullIfEmpty(req.StatusDescription)
	if req.Status != "" {
		now := s.now()
		meeting.StatusDatetime = &now
	}

	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, err
	}
	return s.meetings.GetByID(ctx, meetingID)
}

// RecordAttendance marks the meeting completed and upserts attendance for group members.
// An empty entry list still completes the meeting.
func (s *MeetingService) RecordAttendance(ctx context.Context, meetingID, guideID int64, role models.Role, entries []dto.AttendanceEntry) (*models.Meeting, error) {
	meeting, err := s.loadOwned(ctx, meetingID, guideID, role)
	if err != nil {
		return nil, err
	}

	members, err := s.groups.ListMembers(ctx, meeting.GroupID)
	if err != nil {
		return nil, err
	}
	isMember := make(map[int64]bool, len(members))
	for _, m := range members {
		isMember[m.StudentID] = true
	}

	attendance := make([]models.Attendance, 0, len(entries))
	for _, e := range entries {
		if !isMember[e.StudentID] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Student %d is not a member of this group.", e.StudentID))
		}
		attendance = append(attendance, models.Attendance{
			MeetingID: meetingID,
			StudentID: e.StudentID,
			IsPresent: e.IsPresent,
			Remarks:   helpers.NullIfEmpty(e.Remarks),
		})
	}

	if err := s.meetings.RecordAttendance(ctx, meetingID, attendance); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("meetingID", meetingID).Int("entries", len(attendance)).Msg("Attendance recorded")
	return s.meetings.GetByID(ctx, meetingID)
}

// ListForGuide returns the faculty member's meetings with attendance
func (s *MeetingService) ListForGuide(ctx context.Context, guideID int64) ([]*models.Meeting, error) {
	return s.meetings.ListByGuide(ctx, guideID)
}

// ListForStudent returns the student's group meetings with their own attendance
func (s *MeetingService) ListForStudent(ctx context.Context, studentID int64) ([]*models.Meeting, error) {
	m, err := s.groups.GetMembership(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotInGroup) {
			return []*models.Meeting{}, nil
		}
		return nil, err
	}
	return s.meetings.ListByGroup(ctx, m.GroupID, studentID)
}

// ListAll returns every meeting for admins
func (s *MeetingService) ListAll(ctx context.Context) ([]*models.Meeting, error) {
	return s.meetings.ListAll(ctx)
}
