package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// DashboardController serves the faculty and student dashboards
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Faculty returns the guide dashboard
// @Summary Faculty dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.FacultyDashboard}
// @Router /faculty/dashboard [get]
func (c *DashboardController) Faculty(ctx *gin.Context) {
	guideID, _ := middleware.Identity(ctx)
	d, err := c.dashboardService.Faculty(ctx, guideID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(d))
}

// Student returns the student dashboard
// @Summary Student dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.StudentDashboard}
// @Router /student/dashboard [get]
func (c *DashboardController) Student(ctx *gin.Context) {
	studentID, _ := middleware.Identity(ctx)
	d, err := c.dashboardService.Student(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(d))
}
