package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// GroupController handles project groups, proposals and guide assignment
type GroupController struct {
	groupService *services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService *services.GroupService) *GroupController {
	return &GroupController{groupService: groupService}
}

// CreateGroup creates a group with the caller as leader and submits its proposal
// @Summary Create a project group
// @Description Accepts JSON or multipart/form-data. In a form, projectSkills is a JSON array string and proposalFile an optional file.
// @Tags groups
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "Group and proposal"
// @Success 201 {object} dto.APIResponse{data=models.ProjectGroup}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "You are already in a group"
// @Router /student/groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	studentID, _ := middleware.Identity(ctx)
	group, err := c.groupService.CreateGroup(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(group))
}

// MyGroup returns the caller's group, or null
// @Summary Get my group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.ProjectGroup}
// @Router /student/group [get]
func (c *GroupController) MyGroup(ctx *gin.Context) {
	studentID, _ := middleware.Identity(ctx)
	group, err := c.groupService.MyGroup(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondNullable(ctx, group)
}

// AssignGuide lets the group leader pick a guide
// @Summary Assign my group's guide
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignGuideRequest true "Guide"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Only the group leader can assign a guide"
// @Router /student/group/guide [put]
func (c *GroupController) AssignGuide(ctx *gin.Context) {
	var req dto.AssignGuideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	studentID, _ := middleware.Identity(ctx)
	if err := c.groupService.AssignGuideAsLeader(ctx, studentID, req.GuideID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Guide assigned successfully"))
}

// ReviewGroup approves or rejects a proposal
// @Summary Review a proposal
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param request body dto.ReviewGroupRequest true "Decision"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Only the group's guide can review"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id}/review [post]
func (c *GroupController) ReviewGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}
	var req dto.ReviewGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	userID, role := middleware.Identity(ctx)
	if err := c.groupService.ReviewGroup(ctx, groupID, userID, role, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Proposal reviewed successfully"))
}

// GetGroup returns group detail to members, the guide and admins
// @Summary Get a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectGroup}
// @Failure 403 {object} dto.ErrorResponse "No access to this group"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}
	userID, role := middleware.Identity(ctx)
	group, err := c.groupService.GetGroup(ctx, groupID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}

// GuidedGroups lists the faculty member's groups
// @Summary List my guided groups
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectGroup}
// @Router /faculty/groups [get]
func (c *GroupController) GuidedGroups(ctx *gin.Context) {
	facultyID, _ := middleware.Identity(ctx)
	groups, err := c.groupService.ListGuidedGroups(ctx, facultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups))
}
