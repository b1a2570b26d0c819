package models

import "time"

// Department is an academic department
type Department struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      *string   `json:"code,omitempty" db:"code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AcademicYear is a named academic year, at most one of which is current
type AcademicYear struct {
	ID        int64     `json:"id" db:"id"`
	YearName  string    `json:"yearName" db:"year_name"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	IsCurrent bool      `json:"isCurrent" db:"is_current"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProjectType classifies project groups (Major, Minor, Research)
type ProjectType struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	GroupCount  int       `json:"groupCount" db:"-"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
