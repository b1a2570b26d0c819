package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository       *StudentRepository
	StaffRepository         *StaffRepository
	DepartmentRepository    *DepartmentRepository
	AcademicYearRepository  *AcademicYearRepository
	ProjectTypeRepository   *ProjectTypeRepository
	GroupRepository         *GroupRepository
	InvitationRepository    *InvitationRepository
	ReportRepository        *ReportRepository
	MeetingRepository       *MeetingRepository
	DocumentRepository      *DocumentRepository
	NotificationRepository  *NotificationRepository
	DiscussionRepository    *DiscussionRepository
	PasswordResetRepository *PasswordResetTokenRepository
	TokenRepository         *TokenRepository
	DashboardRepository     *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:       NewStudentRepository(db),
		StaffRepository:         NewStaffRepository(db),
		DepartmentRepository:    NewDepartmentRepository(db),
		AcademicYearRepository:  NewAcademicYearRepository(db),
		ProjectTypeRepository:   NewProjectTypeRepository(db),
		GroupRepository:         NewGroupRepository(db),
		InvitationRepository:    NewInvitationRepository(db),
		ReportRepository:        NewReportRepository(db),
		MeetingRepository:       NewMeetingRepository(db),
		DocumentRepository:      NewDocumentRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
		DiscussionRepository:    NewDiscussionRepository(db),
		PasswordResetRepository: NewPasswordResetTokenRepository(db),
		TokenRepository:         NewTokenRepository(db),
		DashboardRepository:     NewDashboardRepository(db),
	}
}
