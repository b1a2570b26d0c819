package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// DiscussionController serves group discussion threads
type DiscussionController struct {
	discussionService *services.DiscussionService
}

// NewDiscussionController creates a new DiscussionController
func NewDiscussionController(discussionService *services.DiscussionService) *DiscussionController {
	return &DiscussionController{discussionService: discussionService}
}

// Messages returns a group's thread
// @Summary List discussion messages
// @Tags discussion
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=[]models.DiscussionMessage}
// @Failure 403 {object} dto.ErrorResponse "No access to this group"
// @Router /groups/{id}/discussion [get]
func (c *DiscussionController) Messages(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}
	userID, role := middleware.Identity(ctx)
	msgs, err := c.discussionService.Messages(ctx, groupID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(msgs))
}

// Post adds a message to a group's thread
// @Summary Post a discussion message
// @Tags discussion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param request body dto.DiscussionPostRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.DiscussionMessage}
// @Failure 400 {object} dto.ErrorResponse "Message cannot be empty"
// @Failure 403 {object} dto.ErrorResponse "No access to this group"
// @Router /groups/{id}/discussion [post]
func (c *DiscussionController) Post(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}
	var req dto.DiscussionPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	userID, role := middleware.Identity(ctx)
	msg, err := c.discussionService.Post(ctx, groupID, userID, role, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg))
}

// Groups returns the groups the caller can discuss in. Faculty get a list; students get
// their own group or null.
// @Summary Discussion groups
// @Tags discussion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.GroupSummary}
// @Router /discussion/groups [get]
func (c *DiscussionController) Groups(ctx *gin.Context) {
	userID, role := middleware.Identity(ctx)
	groups, err := c.discussionService.Groups(ctx, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if role == models.RoleStudent {
		var own *models.GroupSummary
		if len(groups) > 0 {
			own = &groups[0]
		}
		respondNullable(ctx, own)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups))
}
