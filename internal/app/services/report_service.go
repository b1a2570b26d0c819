package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/validation"
)

// ReportService handles weekly reports and guide feedback
type ReportService struct {
	reports  ReportStore
	groups   GroupStore
	authz    GroupAuthorizer
	notifier Notifier
	logger   zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reports ReportStore, groups GroupStore, authz GroupAuthorizer, notifier Notifier, logger zerolog.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		groups:   groups,
		authz:    authz,
		notifier: notifier,
		logger:   logger.With().Str("service", "report").Logger(),
	}
}

func (s *ReportService) membership(ctx context.Context, studentID int64, msg string) (*models.Membership, error) {
	m, err := s.groups.GetMembership(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotInGroup) {
			return nil, apperrors.NewCustomError(apperrors.ErrNotInGroup, msg)
		}
		return nil, err
	}
	return m, nil
}

// Submit stores a weekly report for the student's group and notifies the guide
func (s *ReportService) Submit(ctx context.Context, studentID int64, weekNumber int, content string) (*models.WeeklyReport, error) {
	if weekNumber < 1 {
		return nil, apperrors.NewValidationError("Week number must be at least 1.")
	}
	if !validation.MinLength(content, validation.ReportContentMinLength) {
		return nil, apperrors.NewValidationError("Report content must be at least 10 characters long.")
	}

	m, err := s.membership(ctx, studentID, "You must be in a project group to submit a report.")
	if err != nil {
		return nil, err
	}

	report := &models.WeeklyReport{
		GroupID:     m.GroupID,
		WeekNumber:  weekNumber,
		Content:     strings.TrimSpace(content),
		SubmittedBy: studentID,
		Status:      models.ReportPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateReport) {
			return nil, apperrors.NewCustomError(apperrors.ErrDuplicateReport,
				fmt.Sprintf("A report for week %d has already been submitted.", weekNumber))
		}
		return nil, err
	}
	s.logger.Info().Int64("groupID", m.GroupID).Int("week", weekNumber).Msg("Weekly report submitted")

	group, err := s.groups.GetByID(ctx, m.GroupID)
	if err != nil {
		s.logger.Error().Err(err).Int64("groupID", m.GroupID).Msg("Failed to load group for report notification")
		return report, nil
	}
	report.GroupName = group.Name
	if group.GuideID != nil {
		s.notifier.Notify(ctx, *group.GuideID, models.RoleFaculty, "New Report Submitted",
			fmt.Sprintf("Week %d report submitted by %s.", weekNumber, group.Name),
			"/dashboard/faculty/reviews")
	}
	return report, nil
}

// ListForStudent returns the student's group reports, newest week first
func (s *ReportService) ListForStudent(ctx context.Context, studentID int64) ([]*models.WeeklyReport, error) {
	m, err := s.groups.GetMembership(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotInGroup) {
			return []*models.WeeklyReport{}, nil
		}
		return nil, err
	}
	return s.reports.ListByGroup(ctx, m.GroupID)
}

// ListForGuide returns reports of the faculty member's groups, optionally by status
func (s *ReportService) ListForGuide(ctx context.Context, guideID int64, status *models.ReportStatus) ([]*models.WeeklyReport, error) {
	if status != nil && *status != models.ReportPending && *status != models.ReportReviewed {
		return nil, apperrors.NewValidationError("Status must be pending or reviewed.")
	}
	return s.reports.ListByGuide(ctx, guideID, status)
}

// reviewedMessage is the member notification text for a reviewed report
func reviewedMessage(week int, marks *int) string {
	if marks != nil {
		return fmt.Sprintf("Your Week %d report has been reviewed — Marks: %d/100.", week, *marks)
	}
	return fmt.Sprintf("Your Week %d report has been reviewed.", week)
}

// GiveFeedback reviews a report. Only the group's guide may do so; every member is notified.
func (s *ReportService) GiveFeedback(ctx context.Context, reportID, guideID int64, role models.Role, feedback string, marks *int) (*models.WeeklyReport, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, apperrors.NewValidationError("Feedback cannot be empty")
	}
	if marks != nil && !validation.IsMarks(*marks) {
		return nil, apperrors.NewValidationError("Marks must be between 0 and 100.")
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateGuide(ctx, report.GroupID, guideID, role); err != nil {
		return nil, err
	}

	if err := s.reports.SaveFeedback(ctx, reportID, feedback, marks); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("reportID", reportID).Int64("userID", guideID).Msg("Report reviewed")

	members, err := s.groups.ListMembers(ctx, report.GroupID)
	if err != nil {
		s.logger.Error().Err(err).Int64("groupID", report.GroupID).Msg("Failed to load members for feedback notification")
	} else {
		notifyStudents(ctx, s.notifier, members, 0, "Report Reviewed",
			reviewedMessage(report.WeekNumber, marks), "/dashboard/student/reports")
	}

	return s.reports.GetByID(ctx, reportID)
}
