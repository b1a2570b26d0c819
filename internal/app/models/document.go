package models

import "time"

// Document is a file a student uploaded for their group
type Document struct {
	ID           int64     `json:"id" db:"id"`
	GroupID      int64     `json:"groupId" db:"group_id"`
	Title        string    `json:"title" db:"title"`
	FileName     string    `json:"fileName" db:"file_name"`
	FilePath     string    `json:"filePath" db:"file_path"`
	FileSize     int64     `json:"fileSize" db:"file_size"`
	MimeType     *string   `json:"mimeType,omitempty" db:"mime_type"`
	UploadedBy   int64     `json:"uploadedBy" db:"uploaded_by"`
	UploadedAt   time.Time `json:"uploadedAt" db:"uploaded_at"`
	UploaderName string    `json:"uploaderName,omitempty" db:"-"`
}
