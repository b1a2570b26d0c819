package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/controllers"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/middleware"
	"github.com/yigit/projecthub/internal/pkg/websocket"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth          *controllers.AuthController
	Admin         *controllers.AdminController
	Department    *controllers.DepartmentController
	ReferenceData *controllers.ReferenceDataController
	User          *controllers.UserController
	Group         *controllers.GroupController
	Invitation    *controllers.InvitationController
	Report        *controllers.ReportController
	Meeting       *controllers.MeetingController
	Document      *controllers.DocumentController
	Notification  *controllers.NotificationController
	Discussion    *controllers.DiscussionController
	Dashboard     *controllers.DashboardController
	Realtime      *websocket.Handler

	AuthMiddleware *middleware.AuthMiddleware
	AuthLimiter    *middleware.IPRateLimiter
}

// SetupRouter configures all application routes under /api/v1
func SetupRouter(router *gin.Engine, h Handlers) {
	v1 := router.Group("/api/v1")

	// --- Public reference data used by forms ---
	v1.GET("/departments", h.Department.GetAllDepartments)
	v1.GET("/departments/:id", h.Department.GetDepartmentByID)
	v1.GET("/academic-years", h.ReferenceData.ListAcademicYears)
	v1.GET("/academic-years/current", h.ReferenceData.CurrentAcademicYear)
	v1.GET("/project-types", h.ReferenceData.ListProjectTypes)
	v1.GET("/faculty-members", h.User.ListFaculty)

	// --- Public auth routes, rate limited per IP ---
	auth := v1.Group("/auth")
	auth.Use(h.AuthLimiter.Middleware())
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/reset-password/:token", h.Auth.ValidateResetToken)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(h.AuthMiddleware.JWTAuth())
	{
		authenticated.GET("/me", h.Auth.Me)
		authenticated.GET("/ws", h.Realtime.HandleConnection)

		groups := authenticated.Group("/groups")
		{
			groups.GET("/:id", h.Group.GetGroup)
			groups.GET("/:id/documents", h.Document.ListByGroup)
			groups.GET("/:id/discussion", h.Discussion.Messages)
			groups.POST("/:id/discussion", h.Discussion.Post)
			groups.POST("/:id/review",
				h.AuthMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin), h.Group.ReviewGroup)
		}

		authenticated.GET("/discussion/groups", h.Discussion.Groups)
		authenticated.GET("/students/search",
			h.AuthMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin), h.User.SearchStudents)

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.PUT("/read-all", h.Notification.MarkAllRead)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}

		// Student-only routes
		student := authenticated.Group("/student")
		student.Use(h.AuthMiddleware.RoleRequired(models.RoleStudent))
		{
			student.GET("/dashboard", h.Dashboard.Student)
			student.PUT("/profile", h.User.UpdateProfile)
			student.POST("/groups", h.Group.CreateGroup)
			student.GET("/group", h.Group.MyGroup)
			student.PUT("/group/guide", h.Group.AssignGuide)
			student.POST("/group/invitations", h.Invitation.Invite)
			student.POST("/group/reports", h.Report.Submit)
			student.GET("/group/reports", h.Report.ListMine)
			student.GET("/group/meetings", h.Meeting.ListForStudent)
			student.POST("/group/documents", h.Document.Upload)
			student.GET("/invitations", h.Invitation.ListPending)
			student.POST("/invitations/:id/respond", h.Invitation.Respond)
		}

		// Faculty-only routes
		faculty := authenticated.Group("/faculty")
		faculty.Use(h.AuthMiddleware.RoleRequired(models.RoleFaculty))
		{
			faculty.GET("/dashboard", h.Dashboard.Faculty)
			faculty.PUT("/profile", h.User.UpdateProfile)
			faculty.GET("/groups", h.Group.GuidedGroups)
			faculty.GET("/reports", h.Report.ListForGuide)
			faculty.PUT("/reports/:id/feedback", h.Report.Feedback)
			faculty.POST("/meetings", h.Meeting.Schedule)
			faculty.GET("/meetings", h.Meeting.ListForGuide)
			faculty.PUT("/meetings/:id", h.Meeting.Update)
			faculty.POST("/meetings/:id/attendance", h.Meeting.RecordAttendance)
		}

		// Admin-only routes
		admin := authenticated.Group("/admin")
		admin.Use(h.AuthMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/dashboard", h.Admin.Dashboard)
			admin.POST("/students", h.Admin.CreateStudent)
			admin.GET("/students", h.Admin.ListStudents)
			admin.POST("/staff", h.Admin.CreateStaff)
			admin.GET("/staff", h.Admin.ListStaff)
			admin.GET("/groups", h.Admin.ListGroups)
			admin.PUT("/groups/:id/guide", h.Admin.AssignGuide)
			admin.GET("/meetings", h.Admin.ListMeetings)
			admin.POST("/password-resets", h.Admin.CreateResetLink)

			admin.POST("/departments", h.Department.CreateDepartment)
			admin.PUT("/departments/:id", h.Department.UpdateDepartment)
			admin.DELETE("/departments/:id", h.Department.DeleteDepartment)
			admin.POST("/academic-years", h.ReferenceData.CreateAcademicYear)
			admin.PUT("/academic-years/:id", h.ReferenceData.UpdateAcademicYear)
			admin.DELETE("/academic-years/:id", h.ReferenceData.DeleteAcademicYear)
			admin.POST("/project-types", h.ReferenceData.CreateProjectType)
			admin.PUT("/project-types/:id", h.ReferenceData.UpdateProjectType)
			admin.DELETE("/project-types/:id", h.ReferenceData.DeleteProjectType)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
