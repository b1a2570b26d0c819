package services

import (
	"context"
	"strings"

	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/helpers"
)

// DepartmentService handles department-related operations
type DepartmentService struct {
	departmentRepo DepartmentStore
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo DepartmentStore) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

func normalizeDepartment(name, code string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("Department name is required.")
	}
	var codePtr *string
	if c := helpers.NullIfEmpty(code); c != nil {
		upper := strings.ToUpper(*c)
		codePtr = &upper
	}
	return &models.Department{Name: name, Code: codePtr}, nil
}

// CreateDepartment creates a department
func (s *DepartmentService) CreateDepartment(ctx context.Context, name, code string) (*models.Department, error) {
	department, err := normalizeDepartment(name, code)
	if err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// GetDepartmentByID returns one department
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// ListDepartments returns all departments ordered by name
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.List(ctx)
}

// UpdateDepartment renames a department or changes its code
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id int64, name, code string) (*models.Department, error) {
	department, err := normalizeDepartment(name, code)
	if err != nil {
		return nil, err
	}
	department.ID = id
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return s.departmentRepo.GetByID(ctx, id)
}

// DeleteDepartment deletes an unreferenced department
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}
