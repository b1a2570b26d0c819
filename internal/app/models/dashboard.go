package models

import "time"

// AdminDashboard summarises the whole system
type AdminDashboard struct {
	StudentCount          int64           `json:"studentCount"`
	FacultyCount          int64           `json:"facultyCount"`
	GroupCount            int64           `json:"groupCount"`
	PendingGroupCount     int64           `json:"pendingGroupCount"`
	GroupsWithoutMeetings int64           `json:"groupsWithoutMeetings"`
	UnassignedGroups      []GroupSummary  `json:"unassignedGroups"`
	Faculty               []FacultyOption `json:"faculty"`
}

// FacultyDashboard summarises a guide's workload
type FacultyDashboard struct {
	GuidedGroupCount   int64          `json:"guidedGroupCount"`
	UpcomingMeetings   int64          `json:"upcomingMeetings"`
	PendingReportCount int64          `json:"pendingReportCount"`
	Groups             []GroupSummary `json:"groups"`
}

// StudentDashboard summarises a student's group activity
type StudentDashboard struct {
	Group               *GroupSummary `json:"group"`
	IsLeader            bool          `json:"isLeader"`
	ReportCount         int           `json:"reportCount"`
	ReviewedReportCount int           `json:"reviewedReportCount"`
	NextMeeting         *Meeting      `json:"nextMeeting"`
	UnreadNotifications int64         `json:"unreadNotifications"`
	PendingInvitations  int           `json:"pendingInvitations"`
	GeneratedAt         time.Time     `json:"generatedAt"`
}
