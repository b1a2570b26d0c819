package services

import (
	"context"
	"strings"

	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/helpers"
)

// ProjectTypeService manages project types
type ProjectTypeService struct {
	typeRepo ProjectTypeStore
}

// NewProjectTypeService creates a new ProjectTypeService
func NewProjectTypeService(typeRepo ProjectTypeStore) *ProjectTypeService {
	return &ProjectTypeService{typeRepo: typeRepo}
}

// Create adds a project type
func (s *ProjectTypeService) Create(ctx context.Context, name, description string) (*models.ProjectType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("Project type name is required.")
	}
	pt := &models.ProjectType{Name: name, Description: helpers.NullIfEmpty(description)}
	if err := s.typeRepo.Create(ctx, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

// Update renames a project type or changes its description
func (s *ProjectTypeService) Update(ctx context.Context, id int64, name, description string) (*models.ProjectType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("Project type name is required.")
	}
	if err := s.typeRepo.Update(ctx, &models.ProjectType{ID: id, Name: name, Description: helpers.NullIfEmpty(description)}); err != nil {
		return nil, err
	}
	return s.typeRepo.GetByID(ctx, id)
}

// List returns project types by name with their group counts
func (s *ProjectTypeService) List(ctx context.Context) ([]*models.ProjectType, error) {
	return s.typeRepo.List(ctx)
}

// Delete removes a project type no group uses
func (s *ProjectTypeService) Delete(ctx context.Context, id int64) error {
	return s.typeRepo.Delete(ctx, id)
}
