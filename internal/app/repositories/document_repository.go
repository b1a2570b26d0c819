package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

// DocumentRepository stores metadata about uploaded group documents
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

// Create records an uploaded document
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	sql, args, err := r.sb.Insert("project_documents").
		Columns("group_id", "title", "file_name", "file_path", "file_size", "mime_type", "uploaded_by").
		Values(doc.GroupID, doc.Title, doc.FileName, doc.FilePath, doc.FileSize, doc.MimeType, doc.UploadedBy).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&doc.ID, &doc.UploadedAt); err != nil {
		logger.Error().Err(err).Int64("groupID", doc.GroupID).Str("file", doc.FileName).Msg("Error creating document record")
		return fmt.Errorf("error creating document: %w", err)
	}
	return nil
}

// ListByGroup returns a group's documents, newest first
func (r *DocumentRepository) ListByGroup(ctx context.Context, groupID int64) ([]*models.Document, error) {
	sql, args, err := r.sb.Select("d.id", "d.group_id", "d.title", "d.file_name", "d.file_path", "d.file_size",
		"d.mime_type", "d.uploaded_by", "d.uploaded_at", "s.name").
		From("project_documents d").
		Join("students s ON s.id = d.uploaded_by").
		Where(squirrel.Eq{"d.group_id": groupID}).
		OrderBy("d.uploaded_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*models.Document, 0)
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.GroupID, &d.Title, &d.FileName, &d.FilePath, &d.FileSize,
			&d.MimeType, &d.UploadedBy, &d.UploadedAt, &d.UploaderName); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}
