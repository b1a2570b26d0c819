package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/filestorage"
	"github.com/yigit/projecthub/internal/pkg/helpers"
	"github.com/yigit/projecthub/internal/pkg/validation"
)

// DocumentService stores group documents
type DocumentService struct {
	documents DocumentStore
	groups    GroupStore
	authz     GroupAuthorizer
	storage   filestorage.FileStorage
	logger    zerolog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documents DocumentStore, groups GroupStore, authz GroupAuthorizer, storage filestorage.FileStorage, logger zerolog.Logger) *DocumentService {
	return &DocumentService{
		documents: documents,
		groups:    groups,
		authz:     authz,
		storage:   storage,
		logger:    logger.With().Str("service", "document").Logger(),
	}
}

// Upload stores a file for the student's group
func (s *DocumentService) Upload(ctx context.Context, studentID int64, title string, file *multipart.FileHeader) (*models.Document, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("No file provided")
	}
	if err := filestorage.ValidateUpload(file); err != nil {
		return nil, err
	}
	if !validation.MinLength(title, validation.DocumentTitleMinLength) {
		return nil, apperrors.NewValidationError("Title must be at least 3 characters")
	}

	m, err := s.groups.GetMembership(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotInGroup) {
			return nil, apperrors.NewForbiddenError("You are not a member of this group")
		}
		return nil, err
	}

	info, err := s.storage.SaveFileWithPath(file, "")
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		GroupID:    m.GroupID,
		Title:      strings.TrimSpace(title),
		FileName:   file.Filename,
		FilePath:   info.Path,
		FileSize:   info.FileSize,
		MimeType:   helpers.NullIfEmpty(info.MimeType),
		UploadedBy: studentID,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		if delErr := s.storage.DeleteFile(info.Path); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", info.Path).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}
	s.logger.Info().Int64("groupID", m.GroupID).Int64("documentID", doc.ID).Msg("Document uploaded")
	return doc, nil
}

// ListByGroup returns a group's documents to its members, its guide and admins
func (s *DocumentService) ListByGroup(ctx context.Context, groupID, userID int64, role models.Role) ([]*models.Document, error) {
	if err := s.authz.ValidateGroupAccess(ctx, groupID, userID, role); err != nil {
		return nil, err
	}
	return s.documents.ListByGroup(ctx, groupID)
}
