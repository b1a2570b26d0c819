package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// ReportController handles weekly reports
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// Submit stores a weekly report for the caller's group
// @Summary Submit a weekly report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitReportRequest true "Report"
// @Success 201 {object} dto.APIResponse{data=models.WeeklyReport}
// @Failure 400 {object} dto.ErrorResponse "Invalid report or not in a group"
// @Failure 409 {object} dto.ErrorResponse "Week already submitted"
// @Router /student/group/reports [post]
func (c *ReportController) Submit(ctx *gin.Context) {
	var req dto.SubmitReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	studentID, _ := middleware.Identity(ctx)
	report, err := c.reportService.Submit(ctx, studentID, req.WeekNumber, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(report))
}

// ListMine returns the caller's group reports
// @Summary List my group's reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.WeeklyReport}
// @Router /student/group/reports [get]
func (c *ReportController) ListMine(ctx *gin.Context) {
	studentID, _ := middleware.Identity(ctx)
	reports, err := c.reportService.ListForStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reports))
}

// ListForGuide returns reports of the caller's guided groups
// @Summary List reports to review
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending or reviewed"
// @Success 200 {object} dto.APIResponse{data=[]models.WeeklyReport}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Router /faculty/reports [get]
func (c *ReportController) ListForGuide(ctx *gin.Context) {
	var status *models.ReportStatus
	if s := ctx.Query("status"); s != "" {
		rs := models.ReportStatus(s)
		status = &rs
	}

	guideID, _ := middleware.Identity(ctx)
	reports, err := c.reportService.ListForGuide(ctx, guideID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reports))
}

// Feedback reviews a report
// @Summary Give report feedback
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body dto.ReportFeedbackRequest true "Feedback and optional marks"
// @Success 200 {object} dto.APIResponse{data=models.WeeklyReport}
// @Failure 400 {object} dto.ErrorResponse "Feedback cannot be empty"
// @Failure 403 {object} dto.ErrorResponse "Not the group's guide"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Router /faculty/reports/{id}/feedback [put]
func (c *ReportController) Feedback(ctx *gin.Context) {
	reportID, ok := parseIDParam(ctx, "id", "Report")
	if !ok {
		return
	}
	var req dto.ReportFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	guideID, role := middleware.Identity(ctx)
	report, err := c.reportService.GiveFeedback(ctx, reportID, guideID, role, req.Feedback, req.Marks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}
