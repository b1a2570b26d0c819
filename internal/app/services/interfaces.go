package services

import (
	"context"
	"time"

	"github.com/yigit/projecthub/internal/app/models"
)

// StudentStore persists student accounts
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) error
	SearchBySkills(ctx context.Context, skills []string) ([]*models.StudentSearchResult, error)
}

// StaffStore persists faculty and admin accounts
type StaffStore interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id int64) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	List(ctx context.Context, role *models.Role, offset uint64, limit int) ([]*models.Staff, int64, error)
	ListFaculty(ctx context.Context) ([]models.FacultyOption, error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) error
}

// DepartmentStore persists departments
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// AcademicYearStore persists academic years
type AcademicYearStore interface {
	Create(ctx context.Context, year *models.AcademicYear) error
	GetByID(ctx context.Context, id int64) (*models.AcademicYear, error)
	GetCurrent(ctx context.Context) (*models.AcademicYear, error)
	List(ctx context.Context) ([]*models.AcademicYear, error)
	Update(ctx context.Context, year *models.AcademicYear) error
	Delete(ctx context.Context, id int64) error
}

// ProjectTypeStore persists project types
type ProjectTypeStore interface {
	Create(ctx context.Context, pt *models.ProjectType) error
	GetByID(ctx context.Context, id int64) (*models.ProjectType, error)
	List(ctx context.Context) ([]*models.ProjectType, error)
	Update(ctx context.Context, pt *models.ProjectType) error
	Delete(ctx context.Context, id int64) error
}

// GroupStore persists project groups and memberships
type GroupStore interface {
	CreateWithLeader(ctx context.Context, group *models.ProjectGroup, leaderID int64) error
	GetByID(ctx context.Context, id int64) (*models.ProjectGroup, error)
	GetGuideID(ctx context.Context, groupID int64) (*int64, error)
	GetMembership(ctx context.Context, studentID int64) (*models.Membership, error)
	ListMembers(ctx context.Context, groupID int64) ([]models.GroupMember, error)
	ListByGuide(ctx context.Context, guideID int64) ([]*models.ProjectGroup, error)
	List(ctx context.Context, filter models.GroupFilter) ([]*models.ProjectGroup, int64, error)
	UpdateGuide(ctx context.Context, groupID, guideID int64) error
	Review(ctx context.Context, groupID int64, status models.GroupStatus, reviewerID int64, reason *string) error
}

// InvitationStore persists group invitations
type InvitationStore interface {
	Create(ctx context.Context, inv *models.Invitation) error
	GetByID(ctx context.Context, id int64) (*models.Invitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]*models.Invitation, error)
	Accept(ctx context.Context, inv *models.Invitation, studentID int64) error
	UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error
}

// ReportStore persists weekly reports
type ReportStore interface {
	Create(ctx context.Context, report *models.WeeklyReport) error
	GetByID(ctx context.Context, id int64) (*models.WeeklyReport, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*models.WeeklyReport, error)
	ListByGuide(ctx context.Context, guideID int64, status *models.ReportStatus) ([]*models.WeeklyReport, error)
	SaveFeedback(ctx context.Context, id int64, feedback string, marks *int) error
}

// MeetingStore persists meetings and attendance
type MeetingStore interface {
	Create(ctx context.Context, m *models.Meeting) error
	GetByID(ctx context.Context, id int64) (*models.Meeting, error)
	Update(ctx context.Context, m *models.Meeting) error
	ListByGuide(ctx context.Context, guideID int64) ([]*models.Meeting, error)
	ListByGroup(ctx context.Context, groupID, studentID int64) ([]*models.Meeting, error)
	ListAll(ctx context.Context) ([]*models.Meeting, error)
	RecordAttendance(ctx context.Context, meetingID int64, entries []models.Attendance) error
}

// DocumentStore persists uploaded group documents
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	ListByGroup(ctx context.Context, groupID int64) ([]*models.Document, error)
}

// NotificationStore persists notifications
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListRecent(ctx context.Context, userID int64, role models.Role, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID int64, role models.Role) (int64, error)
	MarkRead(ctx context.Context, id, userID int64, role models.Role) error
	MarkAllRead(ctx context.Context, userID int64, role models.Role) (int64, error)
}

// DiscussionStore persists group discussion messages
type DiscussionStore interface {
	Create(ctx context.Context, msg *models.DiscussionMessage) error
	ListByGroup(ctx context.Context, groupID int64, limit int) ([]*models.DiscussionMessage, error)
}

// PasswordResetStore persists password reset tokens
type PasswordResetStore interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	ResetPassword(ctx context.Context, token string, passwordHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// RefreshTokenStore persists refresh tokens
type RefreshTokenStore interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	Get(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	Consume(ctx context.Context, token string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

// DashboardStore computes dashboard aggregates
type DashboardStore interface {
	Admin(ctx context.Context) (*models.AdminDashboard, error)
	Faculty(ctx context.Context, guideID int64, now time.Time) (*models.FacultyDashboard, error)
}

// GroupAuthorizer checks group-scoped access
type GroupAuthorizer interface {
	ValidateGroupAccess(ctx context.Context, groupID, userID int64, role models.Role) error
	ValidateGuide(ctx context.Context, groupID, userID int64, role models.Role) error
}

// Notifier delivers a notification to one recipient. Implementations never fail the caller.
type Notifier interface {
	Notify(ctx context.Context, userID int64, role models.Role, title, message, link string)
}
