package models

import "time"

// MeetingStatus is the lifecycle state of a meeting
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

// Valid reports whether s is a known meeting status.
func (s MeetingStatus) Valid() bool {
	return s == MeetingScheduled || s == MeetingCompleted || s == MeetingCancelled
}

// Meeting is a guide meeting with one project group
type Meeting struct {
	ID                int64         `json:"id" db:"id"`
	GroupID           int64         `json:"projectGroupId" db:"group_id"`
	GuideID           int64         `json:"guideId" db:"guide_id"`
	MeetingDate       time.Time     `json:"meetingDate" db:"meeting_date"`
	Purpose           string        `json:"purpose" db:"purpose"`
	Location          *string       `json:"location,omitempty" db:"location"`
	Description       *string       `json:"description,omitempty" db:"description"`
	Status            MeetingStatus `json:"status" db:"status"`
	StatusDescription *string       `json:"statusDescription,omitempty" db:"status_description"`
	StatusDatetime    *time.Time    `json:"statusDatetime,omitempty" db:"status_datetime"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`

	GroupName    string       `json:"groupName,omitempty" db:"-"`
	GuideName    string       `json:"guideName,omitempty" db:"-"`
	PresentCount int          `json:"presentCount" db:"-"`
	TotalMarked  int          `json:"attendanceCount" db:"-"`
	Attendance   []Attendance `json:"attendance,omitempty" db:"-"`
}

// Attendance records whether a student attended a meeting
type Attendance struct {
	MeetingID   int64   `json:"meetingId"`
	StudentID   int64   `json:"studentId"`
	StudentName string  `json:"studentName,omitempty"`
	IsPresent   bool    `json:"isPresent"`
	Remarks     *string `json:"remarks,omitempty"`
}
