package models

import "time"

// Staff defines a faculty member or administrator from the 'staff' table
type Staff struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Dr. Mehmet Kaya"`
	Email        string    `json:"email" db:"email" example:"mkaya@uni.edu"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Password     string    `json:"-" db:"password"`
	Role         Role      `json:"role" db:"role" example:"faculty"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Skills       []string  `json:"skills" db:"skills"`
	DepartmentID *int64    `json:"departmentId,omitempty" db:"department_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Account is the common login view over students and staff
type Account struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Role     Role
}

// ProfileUpdate carries the editable profile fields shared by students and staff
type ProfileUpdate struct {
	Name        string
	Phone       *string
	Description *string
	Skills      []string
}

// FacultyOption is the short form used when a student picks a guide
type FacultyOption struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}
