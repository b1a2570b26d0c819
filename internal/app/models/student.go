package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Ayşe Yılmaz"`
	Email        string    `json:"email" db:"email" example:"ayse@uni.edu"`
	Phone        *string   `json:"phone,omitempty" db:"phone" example:"5551234567"`
	Password     string    `json:"-" db:"password"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Skills       []string  `json:"skills" db:"skills"`
	DepartmentID *int64    `json:"departmentId,omitempty" db:"department_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// StudentSearchResult is a student matched by skill search, with their group if any
type StudentSearchResult struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Skills       []string `json:"skills"`
	Description  *string  `json:"description,omitempty"`
	GroupName    *string  `json:"groupName,omitempty"`
	ProjectTitle *string  `json:"projectTitle,omitempty"`
}
