package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// MeetingController handles guide meetings and attendance
type MeetingController struct {
	meetingService *services.MeetingService
}

// NewMeetingController creates a new MeetingController
func NewMeetingController(meetingService *services.MeetingService) *MeetingController {
	return &MeetingController{meetingService: meetingService}
}

// Schedule creates a meeting with a guided group
// @Summary Schedule a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMeetingRequest true "Meeting"
// @Success 201 {object} dto.APIResponse{data=models.Meeting}
// @Failure 400 {object} dto.ErrorResponse "Invalid meeting"
// @Failure 403 {object} dto.ErrorResponse "Not the group's guide"
// @Router /faculty/meetings [post]
func (c *MeetingController) Schedule(ctx *gin.Context) {
	var req dto.CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	guideID, role := middleware.Identity(ctx)
	meeting, err := c.meetingService.Schedule(ctx, guideID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(meeting))
}

// Update edits a meeting and its status
// @Summary Update a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Param request body dto.UpdateMeetingRequest true "Meeting"
// @Success 200 {object} dto.APIResponse{data=models.Meeting}
// @Failure 400 {object} dto.ErrorResponse "Invalid meeting"
// @Failure 403 {object} dto.ErrorResponse "Not the group's guide"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /faculty/meetings/{id} [put]
func (c *MeetingController) Update(ctx *gin.Context) {
	meetingID, ok := parseIDParam(ctx, "id", "Meeting")
	if !ok {
		return
	}
	var req dto.UpdateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	guideID, role := middleware.Identity(ctx)
	meeting, err := c.meetingService.Update(ctx, meetingID, guideID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(meeting))
}

// RecordAttendance completes a meeting and stores attendance
// @Summary Record attendance
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Param request body dto.AttendanceRequest true "Attendance entries"
// @Success 200 {object} dto.APIResponse{data=models.Meeting}
// @Failure 400 {object} dto.ErrorResponse "Student not in group"
// @Failure 403 {object} dto.ErrorResponse "Not the group's guide"
// @Router /faculty/meetings/{id}/attendance [post]
func (c *MeetingController) RecordAttendance(ctx *gin.Context) {
	meetingID, ok := parseIDParam(ctx, "id", "Meeting")
	if !ok {
		return
	}
	var req dto.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	guideID, role := middleware.Identity(ctx)
	meeting, err := c.meetingService.RecordAttendance(ctx, meetingID, guideID, role, req.Entries)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(meeting))
}

// ListForGuide returns the caller's meetings
// @Summary List my meetings
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Meeting}
// @Router /faculty/meetings [get]
func (c *MeetingController) ListForGuide(ctx *gin.Context) {
	guideID, _ := middleware.Identity(ctx)
	meetings, err := c.meetingService.ListForGuide(ctx, guideID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(meetings))
}

// ListForStudent returns the caller's group meetings
// @Summary List my group's meetings
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Meeting}
// @Router /student/group/meetings [get]
func (c *MeetingController) ListForStudent(ctx *gin.Context) {
	studentID, _ := middleware.Identity(ctx)
	meetings, err := c.meetingService.ListForStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(meetings))
}
