package dto

import "mime/multipart"

// CreateGroupRequest submits a new group with its proposal. It binds from JSON or from a
// multipart form; in a form, projectSkills is a JSON array string.
type CreateGroupRequest struct {
	GroupName        string                `json:"groupName" form:"groupName" binding:"required"`
	ProjectTitle     string                `json:"projectTitle" form:"projectTitle" binding:"required"`
	ProjectTypeID    int64                 `json:"projectTypeId" form:"projectTypeId" binding:"required,gt=0"`
	GuideID          int64                 `json:"guideId" form:"guideId" binding:"required,gt=0"`
	DepartmentID     int64                 `json:"departmentId" form:"departmentId"`
	AcademicYearID   int64                 `json:"academicYearId" form:"academicYearId"`
	Description      string                `json:"description" form:"description" binding:"required"`
	Objectives       string                `json:"objectives" form:"objectives" binding:"required"`
	Methodology      string                `json:"methodology" form:"methodology" binding:"required"`
	ExpectedOutcomes string                `json:"expectedOutcomes" form:"expectedOutcomes" binding:"required"`
	Skills           []string              `json:"projectSkills" form:"-"`
	SkillsJSON       string                `json:"-" form:"projectSkills"`
	ProposalFile     *multipart.FileHeader `json:"-" form:"proposalFile" swaggerignore:"true"`
}

// ReviewGroupRequest approves or rejects a proposal
type ReviewGroupRequest struct {
	Action          string `json:"action" binding:"required,oneof=approve reject" example:"approve"`
	RejectionReason string `json:"rejectionReason"`
}

// InviteMemberRequest invites a student by email
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RespondInvitationRequest accepts or rejects an invitation
type RespondInvitationRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject" example:"accept"`
}

// SubmitReportRequest submits a weekly report
type SubmitReportRequest struct {
	WeekNumber int    `json:"weekNumber" binding:"required,gte=1" example:"3"`
	Content    string `json:"content" binding:"required"`
}

// ReportFeedbackRequest reviews a weekly report
type ReportFeedbackRequest struct {
	Feedback string `json:"feedback"`
	Marks    *int   `json:"marks" example:"85"`
}

// CreateMeetingRequest schedules a meeting
type CreateMeetingRequest struct {
	ProjectGroupID int64  `json:"projectGroupId" binding:"required,gt=0"`
	MeetingDate    string `json:"meetingDate" binding:"required" example:"2025-03-04T10:30"`
	Purpose        string `json:"purpose" binding:"required"`
	Location       string `json:"location"`
	Description    string `json:"description"`
}

// UpdateMeetingRequest edits a meeting and optionally its status
type UpdateMeetingRequest struct {
	MeetingDate       string `json:"meetingDate" binding:"required"`
	Purpose           string `json:"purpose" binding:"required"`
	Location          string `json:"location"`
	Description       string `json:"description"`
	Status            string `json:"status" example:"completed"`
	StatusDescription string `json:"statusDescription"`
}

// AttendanceEntry marks one student's attendance
type AttendanceEntry struct {
	StudentID int64  `json:"studentId" binding:"required,gt=0"`
	IsPresent bool   `json:"isPresent"`
	Remarks   string `json:"remarks"`
}

// AttendanceRequest records attendance for a meeting
type AttendanceRequest struct {
	Entries []AttendanceEntry `json:"entries" binding:"required,dive"`
}

// DiscussionPostRequest posts to a group discussion
type DiscussionPostRequest struct {
	Content string `json:"content"`
}

// UnreadCountResponse is the caller's unread notification count
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
