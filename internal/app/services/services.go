package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/auth"
	"github.com/yigit/projecthub/internal/app/repositories"
	pkgauth "github.com/yigit/projecthub/internal/pkg/auth"
	"github.com/yigit/projecthub/internal/pkg/email"
	"github.com/yigit/projecthub/internal/pkg/filestorage"
	"github.com/yigit/projecthub/internal/pkg/websocket"
)

// Dependencies are the infrastructure pieces the services are built from
type Dependencies struct {
	Repos         *repositories.Repositories
	JWT           *pkgauth.JWTService
	Emitter       websocket.Emitter
	Counter       NotificationCounter
	Storage       filestorage.FileStorage
	Mailer        email.Mailer
	PasswordReset PasswordResetConfig
	Logger        zerolog.Logger
}

// Services holds every application service
type Services struct {
	Authorization *auth.AuthorizationService
	Auth          *AuthService
	PasswordReset *PasswordResetService
	Department    *DepartmentService
	AcademicYear  *AcademicYearService
	ProjectType   *ProjectTypeService
	User          *UserService
	Notification  *NotificationService
	Group         *GroupService
	Invitation    *InvitationService
	Report        *ReportService
	Meeting       *MeetingService
	Document      *DocumentService
	Discussion    *DiscussionService
	Dashboard     *DashboardService
}

// NewServices wires the services onto the repositories
func NewServices(d Dependencies) *Services {
	r := d.Repos
	authz := auth.NewAuthorizationService(r.GroupRepository)
	notifications := NewNotificationService(r.NotificationRepository, d.Emitter, d.Counter, d.Logger)
	invitations := NewInvitationService(r.InvitationRepository, r.GroupRepository, r.StudentRepository, notifications, d.Logger)

	return &Services{
		Authorization: authz,
		Auth:          NewAuthService(r.StudentRepository, r.StaffRepository, r.TokenRepository, d.JWT, d.Logger),
		PasswordReset: NewPasswordResetService(r.PasswordResetRepository, r.TokenRepository, r.StudentRepository, r.StaffRepository, d.Mailer, d.PasswordReset, d.Logger),
		Department:    NewDepartmentService(r.DepartmentRepository),
		AcademicYear:  NewAcademicYearService(r.AcademicYearRepository),
		ProjectType:   NewProjectTypeService(r.ProjectTypeRepository),
		User:          NewUserService(r.StudentRepository, r.StaffRepository, d.Logger),
		Notification:  notifications,
		Group:         NewGroupService(r.GroupRepository, r.StaffRepository, authz, notifications, d.Storage, d.Logger),
		Invitation:    invitations,
		Report:        NewReportService(r.ReportRepository, r.GroupRepository, authz, notifications, d.Logger),
		Meeting:       NewMeetingService(r.MeetingRepository, r.GroupRepository, authz, notifications, d.Logger),
		Document:      NewDocumentService(r.DocumentRepository, r.GroupRepository, authz, d.Storage, d.Logger),
		Discussion: NewDiscussionService(r.DiscussionRepository, r.GroupRepository, r.StudentRepository, r.StaffRepository,
			authz, d.Emitter, notifications, d.Logger),
		Dashboard: NewDashboardService(r.DashboardRepository, r.StaffRepository, r.GroupRepository, r.ReportRepository,
			r.MeetingRepository, r.NotificationRepository, invitations),
	}
}
