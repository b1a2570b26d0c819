package models

import "time"

// GroupStatus is the proposal state of a project group
type GroupStatus string

const (
	GroupStatusPending  GroupStatus = "pending"
	GroupStatusApproved GroupStatus = "approved"
	GroupStatusRejected GroupStatus = "rejected"
)

// Valid reports whether s is a known group status.
func (s GroupStatus) Valid() bool {
	return s == GroupStatusPending || s == GroupStatusApproved || s == GroupStatusRejected
}

// ProjectGroup is a student team with its proposal and guide
type ProjectGroup struct {
	ID                  int64       `json:"id" db:"id"`
	Name                string      `json:"name" db:"name"`
	ProjectTitle        string      `json:"projectTitle" db:"project_title"`
	ProjectTypeID       *int64      `json:"projectTypeId,omitempty" db:"project_type_id"`
	GuideID             *int64      `json:"guideId,omitempty" db:"guide_id"`
	DepartmentID        *int64      `json:"departmentId,omitempty" db:"department_id"`
	AcademicYearID      *int64      `json:"academicYearId,omitempty" db:"academic_year_id"`
	Description         string      `json:"description" db:"description"`
	Objectives          string      `json:"objectives" db:"objectives"`
	Methodology         string      `json:"methodology" db:"methodology"`
	ExpectedOutcomes    string      `json:"expectedOutcomes" db:"expected_outcomes"`
	Skills              []string    `json:"projectSkills" db:"skills"`
	ProposalFilePath    *string     `json:"proposalFilePath,omitempty" db:"proposal_file_path"`
	ProposalSubmittedAt *time.Time  `json:"proposalSubmittedAt,omitempty" db:"proposal_submitted_at"`
	ReviewedAt          *time.Time  `json:"proposalReviewedAt,omitempty" db:"proposal_reviewed_at"`
	ReviewedBy          *int64      `json:"proposalReviewedBy,omitempty" db:"proposal_reviewed_by"`
	RejectionReason     *string     `json:"rejectionReason,omitempty" db:"rejection_reason"`
	Status              GroupStatus `json:"status" db:"status"`
	CreatedAt           time.Time   `json:"createdAt" db:"created_at"`

	// Joined for display
	ProjectTypeName *string       `json:"projectTypeName,omitempty" db:"-"`
	GuideName       *string       `json:"guideName,omitempty" db:"-"`
	ReviewerName    *string       `json:"reviewerName,omitempty" db:"-"`
	MemberCount     int           `json:"memberCount" db:"-"`
	Members         []GroupMember `json:"members,omitempty" db:"-"`
}

// GroupMember is a student's membership in a group
type GroupMember struct {
	StudentID int64     `json:"studentId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Skills    []string  `json:"skills"`
	IsLeader  bool      `json:"isLeader"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// Membership is the group a student belongs to
type Membership struct {
	GroupID  int64
	IsLeader bool
}

// GroupFilter narrows the admin group listing
type GroupFilter struct {
	Status         *GroupStatus
	DepartmentID   *int64
	AcademicYearID *int64
	ProjectTypeID  *int64
	Offset         uint64
	Limit          int
}

// GroupSummary is the short group form used by discussion pickers and dashboards
type GroupSummary struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	ProjectTitle string      `json:"projectTitle"`
	Status       GroupStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}
