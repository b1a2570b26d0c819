package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

type fakeTypes struct {
	items     []*models.ProjectType
	failOn    string
	createErr error
}

func (f *fakeTypes) List(context.Context) ([]*models.ProjectType, error) { return f.items, nil }

func (f *fakeTypes) Create(_ context.Context, pt *models.ProjectType) error {
	if pt.Name == f.failOn {
		return f.createErr
	}
	pt.ID = int64(len(f.items) + 1)
	f.items = append(f.items, pt)
	return nil
}

func TestCreateDefaultDataSkipsExisting(t *testing.T) {
	types := &fakeTypes{items: []*models.ProjectType{{ID: 1, Name: "major"}}}

	require.NoError(t, CreateDefaultData(context.Background(), types, zerolog.Nop()))

	var names []string
	for _, pt := range types.items {
		names = append(names, pt.Name)
	}
	assert.Equal(t, []string{"major", "Minor", "Research"}, names)

	require.NoError(t, CreateDefaultData(context.Background(), types, zerolog.Nop()))
	assert.Len(t, types.items, 3)
}

func TestCreateDefaultDataCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	types := &fakeTypes{failOn: "Minor", createErr: boom}

	err := CreateDefaultData(context.Background(), types, zerolog.Nop())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, types.items, 2)
}

type fakeStaff struct {
	req *dto.CreateStaffRequest
	err error
}

func (f *fakeStaff) CreateStaff(_ context.Context, req *dto.CreateStaffRequest) (*models.Staff, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Staff{ID: 7, Email: req.Email, Role: req.Role}, nil
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("no email configured", func(t *testing.T) {
		users := &fakeStaff{}
		created, err := EnsureAdmin(ctx, users, AdminAccount{}, zerolog.Nop())
		require.NoError(t, err)
		assert.False(t, created)
		assert.Nil(t, users.req)
	})

	t.Run("creates admin with default name", func(t *testing.T) {
		users := &fakeStaff{}
		created, err := EnsureAdmin(ctx, users, AdminAccount{Email: "admin@uni.edu", Password: "secret1"}, zerolog.Nop())
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Administrator", users.req.Name)
		assert.Equal(t, models.RoleAdmin, users.req.Role)
	})

	t.Run("existing email is not an error", func(t *testing.T) {
		users := &fakeStaff{err: apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "exists")}
		created, err := EnsureAdmin(ctx, users, AdminAccount{Email: "admin@uni.edu", Password: "secret1"}, zerolog.Nop())
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("validation failure is returned", func(t *testing.T) {
		users := &fakeStaff{err: apperrors.NewValidationError("Password too short")}
		_, err := EnsureAdmin(ctx, users, AdminAccount{Email: "admin@uni.edu"}, zerolog.Nop())
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
