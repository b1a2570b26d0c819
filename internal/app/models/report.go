package models

import "time"

// ReportStatus tracks whether a guide has reviewed a weekly report
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
)

// WeeklyReport is one week's progress update from a group
type WeeklyReport struct {
	ID          int64        `json:"id" db:"id"`
	GroupID     int64        `json:"groupId" db:"group_id"`
	WeekNumber  int          `json:"weekNumber" db:"week_number"`
	Content     string       `json:"content" db:"content"`
	SubmittedBy int64        `json:"submittedBy" db:"submitted_by"`
	SubmittedAt time.Time    `json:"submittedAt" db:"submitted_at"`
	Feedback    *string      `json:"feedback,omitempty" db:"feedback"`
	Marks       *int         `json:"marks,omitempty" db:"marks"`
	Status      ReportStatus `json:"status" db:"status"`
	ReviewedAt  *time.Time   `json:"reviewedAt,omitempty" db:"reviewed_at"`

	GroupName     string `json:"groupName,omitempty" db:"-"`
	SubmitterName string `json:"submitterName,omitempty" db:"-"`
}
