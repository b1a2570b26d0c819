package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// ReferenceDataController manages academic years and project types
type ReferenceDataController struct {
	yearService *services.AcademicYearService
	typeService *services.ProjectTypeService
}

// NewReferenceDataController creates a new ReferenceDataController
func NewReferenceDataController(yearService *services.AcademicYearService, typeService *services.ProjectTypeService) *ReferenceDataController {
	return &ReferenceDataController{yearService: yearService, typeService: typeService}
}

// ListAcademicYears returns all academic years
// @Summary List academic years
// @Tags reference-data
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicYear}
// @Router /academic-years [get]
func (c *ReferenceDataController) ListAcademicYears(ctx *gin.Context) {
	years, err := c.yearService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(years))
}

// CurrentAcademicYear returns the year flagged current
// @Summary Current academic year
// @Tags reference-data
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear}
// @Failure 404 {object} dto.ErrorResponse "No current academic year"
// @Router /academic-years/current [get]
func (c *ReferenceDataController) CurrentAcademicYear(ctx *gin.Context) {
	year, err := c.yearService.Current(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(year))
}

// CreateAcademicYear adds an academic year
// @Summary Create an academic year
// @Tags reference-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AcademicYearRequest true "Academic year"
// @Success 201 {object} dto.APIResponse{data=models.AcademicYear}
// @Failure 400 {object} dto.ErrorResponse "Invalid dates"
// @Failure 409 {object} dto.ErrorResponse "Year name already exists"
// @Router /admin/academic-years [post]
func (c *ReferenceDataController) CreateAcademicYear(ctx *gin.Context) {
	var req dto.AcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	year, err := c.yearService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(year))
}

// UpdateAcademicYear rewrites an academic year
// @Summary Update an academic year
// @Tags reference-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param request body dto.AcademicYearRequest true "Academic year"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear}
// @Failure 400 {object} dto.ErrorResponse "Invalid dates"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /admin/academic-years/{id} [put]
func (c *ReferenceDataController) UpdateAcademicYear(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Academic year")
	if !ok {
		return
	}
	var req dto.AcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	year, err := c.yearService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(year))
}

// DeleteAcademicYear removes an academic year
// @Summary Delete an academic year
// @Tags reference-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Academic year is still referenced"
// @Router /admin/academic-years/{id} [delete]
func (c *ReferenceDataController) DeleteAcademicYear(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Academic year")
	if !ok {
		return
	}
	if err := c.yearService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Academic year deleted successfully"))
}

// ListProjectTypes returns project types with their group counts
// @Summary List project types
// @Tags reference-data
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectType}
// @Router /project-types [get]
func (c *ReferenceDataController) ListProjectTypes(ctx *gin.Context) {
	types, err := c.typeService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(types))
}

// CreateProjectType adds a project type
// @Summary Create a project type
// @Tags reference-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProjectTypeRequest true "Project type"
// @Success 201 {object} dto.APIResponse{data=models.ProjectType}
// @Failure 409 {object} dto.ErrorResponse "Name already exists"
// @Router /admin/project-types [post]
func (c *ReferenceDataController) CreateProjectType(ctx *gin.Context) {
	var req dto.ProjectTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	pt, err := c.typeService.Create(ctx, req.Name, req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(pt))
}

// UpdateProjectType renames a project type
// @Summary Update a project type
// @Tags reference-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project type ID"
// @Param request body dto.ProjectTypeRequest true "Project type"
// @Success 200 {object} dto.APIResponse{data=models.ProjectType}
// @Failure 404 {object} dto.ErrorResponse "Project type not found"
// @Router /admin/project-types/{id} [put]
func (c *ReferenceDataController) UpdateProjectType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Project type")
	if !ok {
		return
	}
	var req dto.ProjectTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	pt, err := c.typeService.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pt))
}

// DeleteProjectType removes an unreferenced project type
// @Summary Delete a project type
// @Tags reference-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project type ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Groups still use this type"
// @Router /admin/project-types/{id} [delete]
func (c *ReferenceDataController) DeleteProjectType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Project type")
	if !ok {
		return
	}
	if err := c.typeService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Project type deleted successfully"))
}
