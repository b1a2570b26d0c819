package models

import "time"

// InvitationStatus is the state of a group invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// Invitation asks a student, by email, to join a group
type Invitation struct {
	ID        int64            `json:"id" db:"id"`
	GroupID   int64            `json:"groupId" db:"group_id"`
	Email     string           `json:"email" db:"email"`
	InvitedBy int64            `json:"invitedBy" db:"invited_by"`
	Status    InvitationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`

	GroupName    string `json:"groupName,omitempty" db:"-"`
	ProjectTitle string `json:"projectTitle,omitempty" db:"-"`
	InviterName  string `json:"inviterName,omitempty" db:"-"`
}
