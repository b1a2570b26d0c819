package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
	"github.com/yigit/projecthub/internal/pkg/helpers"
)

// AdminController serves the admin console: accounts, groups, meetings, dashboard and reset links
type AdminController struct {
	userService      *services.UserService
	groupService     *services.GroupService
	meetingService   *services.MeetingService
	dashboardService *services.DashboardService
	resetService     *services.PasswordResetService
}

// NewAdminController creates a new AdminController
func NewAdminController(
	userService *services.UserService,
	groupService *services.GroupService,
	meetingService *services.MeetingService,
	dashboardService *services.DashboardService,
	resetService *services.PasswordResetService,
) *AdminController {
	return &AdminController{
		userService:      userService,
		groupService:     groupService,
		meetingService:   meetingService,
		dashboardService: dashboardService,
		resetService:     resetService,
	}
}

// CreateStudent creates a student account
// @Summary Create a student
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student account"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email might already exist"
// @Router /admin/students [post]
func (c *AdminController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	student, err := c.userService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// CreateStaff creates a faculty or admin account
// @Summary Create a staff member
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStaffRequest true "Staff account"
// @Success 201 {object} dto.APIResponse{data=models.Staff}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email might already exist"
// @Router /admin/staff [post]
func (c *AdminController) CreateStaff(ctx *gin.Context) {
	var req dto.CreateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	staff, err := c.userService.CreateStaff(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(staff))
}

// ListStudents returns one page of students
// @Summary List students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse{items=[]models.Student}}
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	page := helpers.ParsePaginationParams(ctx)
	students, total, err := c.userService.ListStudents(ctx, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PagedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page),
	}))
}

// ListStaff returns one page of staff
// @Summary List staff
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "faculty or admin"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse{items=[]models.Staff}}
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Router /admin/staff [get]
func (c *AdminController) ListStaff(ctx *gin.Context) {
	var role *models.Role
	if r := ctx.Query("role"); r != "" {
		rr := models.Role(r)
		role = &rr
	}
	page := helpers.ParsePaginationParams(ctx)
	staff, total, err := c.userService.ListStaff(ctx, role, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PagedResponse{
		Items:      staff,
		Pagination: helpers.NewPaginationInfo(total, page),
	}))
}

// ListGroups returns one filtered page of project groups
// @Summary List project groups
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param departmentId query int false "Department filter"
// @Param academicYearId query int false "Academic year filter"
// @Param projectTypeId query int false "Project type filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse{items=[]models.ProjectGroup}}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Router /admin/groups [get]
func (c *AdminController) ListGroups(ctx *gin.Context) {
	page := helpers.ParsePaginationParams(ctx)
	filter := models.GroupFilter{
		DepartmentID:   optionalInt64Query(ctx, "departmentId"),
		AcademicYearID: optionalInt64Query(ctx, "academicYearId"),
		ProjectTypeID:  optionalInt64Query(ctx, "projectTypeId"),
		Offset:         page.Offset(),
		Limit:          page.Limit(),
	}
	if s := ctx.Query("status"); s != "" {
		status := models.GroupStatus(s)
		filter.Status = &status
	}

	groups, total, err := c.groupService.ListGroups(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PagedResponse{
		Items:      groups,
		Pagination: helpers.NewPaginationInfo(total, page),
	}))
}

// AssignGuide sets a group's guide
// @Summary Assign a guide to a group
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param request body dto.AssignGuideRequest true "Guide"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Selected guide is not a faculty member"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /admin/groups/{id}/guide [put]
func (c *AdminController) AssignGuide(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}
	var req dto.AssignGuideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if err := c.groupService.AssignGuideAsAdmin(ctx, groupID, req.GuideID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Guide assigned successfully"))
}

// ListMeetings returns every meeting
// @Summary List all meetings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Meeting}
// @Router /admin/meetings [get]
func (c *AdminController) ListMeetings(ctx *gin.Context) {
	meetings, err := c.meetingService.ListAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(meetings))
}

// Dashboard returns system-wide counts
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.AdminDashboard}
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	d, err := c.dashboardService.Admin(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(d))
}

// CreateResetLink issues a password reset link for an account
// @Summary Create a password reset link
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateResetLinkRequest true "Account"
// @Success 201 {object} dto.APIResponse{data=dto.ResetLinkResponse}
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /admin/password-resets [post]
func (c *AdminController) CreateResetLink(ctx *gin.Context) {
	var req dto.CreateResetLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	link, err := c.resetService.CreateResetLink(ctx, req.UserID, req.UserRole)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(link))
}
