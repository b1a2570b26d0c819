package services

import (
	"context"
	"errors"
	"time"

	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

// DashboardService assembles the per-role dashboards
type DashboardService struct {
	dashboards    DashboardStore
	staff         StaffStore
	groups        GroupStore
	reports       ReportStore
	meetings      MeetingStore
	notifications NotificationStore
	invitations   *InvitationService
	now           func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	dashboards DashboardStore,
	staff StaffStore,
	groups GroupStore,
	reports ReportStore,
	meetings MeetingStore,
	notifications NotificationStore,
	invitations *InvitationService,
) *DashboardService {
	return &DashboardService{
		dashboards:    dashboards,
		staff:         staff,
		groups:        groups,
		reports:       reports,
		meetings:      meetings,
		notifications: notifications,
		invitations:   invitations,
		now:           time.Now,
	}
}

// Admin returns system-wide counts, unassigned groups and the faculty list
func (s *DashboardService) Admin(ctx context.Context) (*models.AdminDashboard, error) {
	d, err := s.dashboards.Admin(ctx)
	if err != nil {
		return nil, err
	}
	d.Faculty, err = s.staff.ListFaculty(ctx)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Faculty returns a guide's workload summary
func (s *DashboardService) Faculty(ctx context.Context, guideID int64) (*models.FacultyDashboard, error) {
	return s.dashboards.Faculty(ctx, guideID, s.now())
}

// Student returns the student's group summary, report counts, next meeting and inbox state
func (s *DashboardService) Student(ctx context.Context, studentID int64) (*models.StudentDashboard, error) {
	now := s.now()
	d := &models.StudentDashboard{GeneratedAt: now}

	unread, err := s.notifications.CountUnread(ctx, studentID, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	d.UnreadNotifications = unread

	if s.invitations != nil {
		pending, err := s.invitations.ListPending(ctx, studentID)
		if err != nil {
			return nil, err
		}
		d.PendingInvitations = len(pending)
	}

	m, err := s.groups.GetMembership(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotInGroup) {
			return d, nil
		}
		return nil, err
	}
	d.IsLeader = m.IsLeader

	g, err := s.groups.GetByID(ctx, m.GroupID)
	if err != nil {
		return nil, err
	}
	d.Group = &models.GroupSummary{ID: g.ID, Name: g.Name, ProjectTitle: g.ProjectTitle, Status: g.Status, CreatedAt: g.CreatedAt}

	reports, err := s.reports.ListByGroup(ctx, m.GroupID)
	if err != nil {
		return nil, err
	}
	d.ReportCount = len(reports)
	for _, r := range reports {
		if r.Status == models.ReportReviewed {
			d.ReviewedReportCount++
		}
	}

	meetings, err := s.meetings.ListByGroup(ctx, m.GroupID, studentID)
	if err != nil {
		return nil, err
	}
	for _, mt := range meetings {
		if mt.Status != models.MeetingScheduled || mt.MeetingDate.Before(now) {
			continue
		}
		if d.NextMeeting == nil || mt.MeetingDate.Before(d.NextMeeting.MeetingDate) {
			d.NextMeeting = mt
		}
	}
	return d, nil
}
