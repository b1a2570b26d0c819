package models

import "time"

// Notification is an in-app message addressed to one (user, role) pair
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	UserRole  Role      `json:"userRole" db:"user_role"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Link      *string   `json:"link,omitempty" db:"link"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// DiscussionMessage is a message posted to a group's discussion thread
type DiscussionMessage struct {
	ID         int64     `json:"id" db:"id"`
	GroupID    int64     `json:"groupId" db:"group_id"`
	SenderID   int64     `json:"senderId" db:"sender_id"`
	SenderRole Role      `json:"senderRole" db:"sender_role"`
	SenderName string    `json:"senderName,omitempty" db:"-"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// PasswordResetToken is a single-use admin-issued reset link token
type PasswordResetToken struct {
	ID        int64     `db:"id"`
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	UserRole  Role      `db:"user_role"`
	ExpiresAt time.Time `db:"expires_at"`
	Used      bool      `db:"used"`
	CreatedAt time.Time `db:"created_at"`
}

// RefreshToken is a stored opaque refresh token
type RefreshToken struct {
	Token     string
	UserID    int64
	UserRole  Role
	ExpiresAt time.Time
}
