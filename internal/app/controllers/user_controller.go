package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// UserController handles profiles, the faculty directory and skill search
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// UpdateProfile edits the caller's own profile
// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid profile"
// @Router /student/profile [put]
// @Router /faculty/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	userID, role := middleware.Identity(ctx)
	if err := c.userService.UpdateProfile(ctx, userID, role, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Profile updated successfully"))
}

// ListFaculty returns the faculty members students can choose as guide
// @Summary List faculty members
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.FacultyOption}
// @Router /faculty-members [get]
func (c *UserController) ListFaculty(ctx *gin.Context) {
	faculty, err := c.userService.ListFaculty(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty))
}

// SearchStudents finds students by skill
// @Summary Search students by skills
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param skills query string true "Comma separated skills"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentSearchResult}
// @Router /students/search [get]
func (c *UserController) SearchStudents(ctx *gin.Context) {
	skills := strings.Split(ctx.Query("skills"), ",")
	results, err := c.userService.SearchStudentsBySkills(ctx, skills)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}
