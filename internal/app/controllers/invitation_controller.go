package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// InvitationController handles group invitations
type InvitationController struct {
	invitationService *services.InvitationService
}

// NewInvitationController creates a new InvitationController
func NewInvitationController(invitationService *services.InvitationService) *InvitationController {
	return &InvitationController{invitationService: invitationService}
}

// Invite sends an invitation from the group leader
// @Summary Invite a student
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InviteMemberRequest true "Invitee email"
// @Success 201 {object} dto.APIResponse{data=models.Invitation}
// @Failure 403 {object} dto.ErrorResponse "Only group leaders can invite members"
// @Failure 404 {object} dto.ErrorResponse "Student not found with this email"
// @Failure 409 {object} dto.ErrorResponse "Already invited or already in a group"
// @Router /student/group/invitations [post]
func (c *InvitationController) Invite(ctx *gin.Context) {
	var req dto.InviteMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	leaderID, _ := middleware.Identity(ctx)
	inv, err := c.invitationService.Invite(ctx, leaderID, req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(inv))
}

// ListPending returns the caller's pending invitations
// @Summary List my invitations
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Invitation}
// @Router /student/invitations [get]
func (c *InvitationController) ListPending(ctx *gin.Context) {
	studentID, _ := middleware.Identity(ctx)
	invitations, err := c.invitationService.ListPending(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(invitations))
}

// Respond accepts or rejects an invitation
// @Summary Respond to an invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Param request body dto.RespondInvitationRequest true "accept or reject"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Invitation not found or not for you"
// @Failure 409 {object} dto.ErrorResponse "Invitation already responded to"
// @Router /student/invitations/{id}/respond [post]
func (c *InvitationController) Respond(ctx *gin.Context) {
	invitationID, ok := parseIDParam(ctx, "id", "Invitation")
	if !ok {
		return
	}
	var req dto.RespondInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	studentID, _ := middleware.Identity(ctx)
	if err := c.invitationService.Respond(ctx, studentID, invitationID, req.Action); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	msg := "Invitation rejected"
	if req.Action == "accept" {
		msg = "Invitation accepted"
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse(msg))
}
