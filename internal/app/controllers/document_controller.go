package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/app/services"
	"github.com/yigit/projecthub/internal/middleware"
)

// DocumentController handles group document uploads
type DocumentController struct {
	documentService *services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService *services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// Upload stores a document for the caller's group
// @Summary Upload a group document
// @Tags documents
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Document title"
// @Param file formData file true "Document (max 5MB)"
// @Success 201 {object} dto.APIResponse{data=models.Document}
// @Failure 400 {object} dto.ErrorResponse "Missing, empty or oversized file"
// @Failure 403 {object} dto.ErrorResponse "Not a group member"
// @Router /student/group/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	// A missing file is reported by the service
	file, _ := ctx.FormFile("file")

	studentID, _ := middleware.Identity(ctx)
	doc, err := c.documentService.Upload(ctx, studentID, ctx.PostForm("title"), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(doc))
}

// ListByGroup returns a group's documents
// @Summary List group documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Document}
// @Failure 403 {object} dto.ErrorResponse "No access to this group"
// @Router /groups/{id}/documents [get]
func (c *DocumentController) ListByGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id", "Group")
	if !ok {
		return
	}
	userID, role := middleware.Identity(ctx)
	docs, err := c.documentService.ListByGroup(ctx, groupID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(docs))
}
