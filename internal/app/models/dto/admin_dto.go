package dto

import "github.com/yigit/projecthub/internal/app/models"

// DepartmentRequest creates or updates a department
type DepartmentRequest struct {
	Name string `json:"name" binding:"required" example:"Computer Engineering"`
	Code string `json:"code" example:"CENG"`
}

// AcademicYearRequest creates or updates an academic year. Dates use YYYY-MM-DD.
type AcademicYearRequest struct {
	YearName  string `json:"yearName" binding:"required" example:"2024-2025"`
	StartDate string `json:"startDate" binding:"required" example:"2024-09-01"`
	EndDate   string `json:"endDate" binding:"required" example:"2025-06-30"`
	IsCurrent bool   `json:"isCurrent"`
}

// ProjectTypeRequest creates or updates a project type
type ProjectTypeRequest struct {
	Name        string `json:"name" binding:"required" example:"Major"`
	Description string `json:"description" example:"Major Project"`
}

// CreateStudentRequest is an admin-created student account
type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateStaffRequest is an admin-created faculty or admin account
type CreateStaffRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=faculty admin"`
}

// AssignGuideRequest sets a group's guide
type AssignGuideRequest struct {
	GuideID int64 `json:"guideId" binding:"required,gt=0"`
}
