package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/auth"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

type fakeDocuments struct {
	items  []*models.Document
	err    error
	nextID int64
}

func (f *fakeDocuments) Create(_ context.Context, doc *models.Document) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	doc.ID = f.nextID
	f.items = append(f.items, doc)
	return nil
}

func (f *fakeDocuments) ListByGroup(_ context.Context, groupID int64) ([]*models.Document, error) {
	out := []*models.Document{}
	for _, d := range f.items {
		if d.GroupID == groupID {
			out = append(out, d)
		}
	}
	return out, nil
}

func newDocumentFixture() (*DocumentService, *fakeDocuments, *fakeStorage) {
	groups := newFakeGroups()
	groups.add(1, ptr(int64(7)), 10, 11)
	docs := &fakeDocuments{}
	storage := &fakeStorage{}
	return NewDocumentService(docs, groups, auth.NewAuthorizationService(groups), storage, testLogger), docs, storage
}

func TestUploadDocument(t *testing.T) {
	svc, docs, storage := newDocumentFixture()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, 11, " Design Doc ", &multipart.FileHeader{Filename: "design.pdf", Size: 2048})
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.GroupID)
	assert.Equal(t, "Design Doc", doc.Title)
	assert.Equal(t, "/uploads/1700000000000-design.pdf", doc.FilePath)
	assert.Equal(t, "design.pdf", doc.FileName)
	assert.Len(t, docs.items, 1)
	assert.Equal(t, []string{doc.FilePath}, storage.saved)
}

func TestUploadDocumentValidation(t *testing.T) {
	svc, _, storage := newDocumentFixture()
	ctx := context.Background()

	_, err := svc.Upload(ctx, 10, "Design", nil)
	assert.Equal(t, "No file provided", messageOf(err))

	_, err = svc.Upload(ctx, 10, "Design", &multipart.FileHeader{Filename: "x.pdf"})
	assert.Equal(t, "File is empty", messageOf(err))

	_, err = svc.Upload(ctx, 10, "Design", &multipart.FileHeader{Filename: "x.pdf", Size: 6 << 20})
	assert.Equal(t, "File size exceeds 5MB limit", messageOf(err))

	_, err = svc.Upload(ctx, 10, "ab", &multipart.FileHeader{Filename: "x.pdf", Size: 10})
	assert.Equal(t, "Title must be at least 3 characters", messageOf(err))

	_, err = svc.Upload(ctx, 99, "Design", &multipart.FileHeader{Filename: "x.pdf", Size: 10})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "You are not a member of this group", messageOf(err))

	assert.Empty(t, storage.saved)
}

func TestUploadDocumentRemovesFileOnStoreFailure(t *testing.T) {
	svc, docs, storage := newDocumentFixture()
	docs.err = errors.New("insert failed")

	_, err := svc.Upload(context.Background(), 10, "Design", &multipart.FileHeader{Filename: "x.pdf", Size: 10})
	require.Error(t, err)
	assert.Equal(t, storage.saved, storage.deleted)
}

func TestListDocuments(t *testing.T) {
	svc, _, _ := newDocumentFixture()
	ctx := context.Background()
	_, err := svc.Upload(ctx, 10, "Design", &multipart.FileHeader{Filename: "x.pdf", Size: 10})
	require.NoError(t, err)

	for _, tc := range []struct {
		userID int64
		role   models.Role
		ok     bool
	}{
		{10, models.RoleStudent, true},
		{7, models.RoleFaculty, true},
		{1, models.RoleAdmin, true},
		{50, models.RoleStudent, false},
		{8, models.RoleFaculty, false},
	} {
		list, err := svc.ListByGroup(ctx, 1, tc.userID, tc.role)
		if tc.ok {
			require.NoError(t, err)
			assert.Len(t, list, 1)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		}
	}
}
