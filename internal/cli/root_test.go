package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
)

type fakeOps struct {
	migrated   bool
	seeded     bool
	adminName  string
	adminEmail string
	password   string
	resetUser  int64
	resetRole  models.Role
	closed     bool
	configPath string
	err        error
}

func (f *fakeOps) Migrate(context.Context) error { f.migrated = true; return f.err }
func (f *fakeOps) Seed(context.Context) error    { f.seeded = true; return f.err }

func (f *fakeOps) CreateAdmin(_ context.Context, name, email, password string) (*models.Staff, error) {
	f.adminName, f.adminEmail, f.password = name, email, password
	if f.err != nil {
		return nil, f.err
	}
	return &models.Staff{ID: 3, Email: email, Role: models.RoleAdmin}, nil
}

func (f *fakeOps) ResetLink(_ context.Context, userID int64, role models.Role) (*dto.ResetLinkResponse, error) {
	f.resetUser, f.resetRole = userID, role
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ResetLinkResponse{
		Link:      "http://localhost:3000/reset-password/abc",
		ExpiresAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}, nil
}

func (f *fakeOps) Close() { f.closed = true }

func execute(t *testing.T, ops *fakeOps, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(func(_ context.Context, configPath string) (Operations, error) {
		ops.configPath = configPath
		return ops, nil
	})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateAndSeed(t *testing.T) {
	ops := &fakeOps{}
	out, err := execute(t, ops, "migrate")
	require.NoError(t, err)
	assert.True(t, ops.migrated)
	assert.True(t, ops.closed)
	assert.Equal(t, "configs/config.yaml", ops.configPath)
	assert.Contains(t, out, "Migrations applied")

	ops = &fakeOps{}
	out, err = execute(t, ops, "seed", "--config", "other.yaml")
	require.NoError(t, err)
	assert.True(t, ops.seeded)
	assert.Equal(t, "other.yaml", ops.configPath)
	assert.Contains(t, out, "Default data created")

	ops = &fakeOps{err: errors.New("db down")}
	_, err = execute(t, ops, "migrate")
	assert.EqualError(t, err, "db down")
	assert.True(t, ops.closed)
}

func TestCreateAdminPromptsForPassword(t *testing.T) {
	orig := readPasswordFunc
	t.Cleanup(func() { readPasswordFunc = orig })

	readPasswordFunc = func(int) ([]byte, error) { return []byte("s3cret!"), nil }
	ops := &fakeOps{}
	out, err := execute(t, ops, "create-admin", "--email", "root@uni.edu", "--name", "Root")
	require.NoError(t, err)
	assert.Equal(t, "Root", ops.adminName)
	assert.Equal(t, "root@uni.edu", ops.adminEmail)
	assert.Equal(t, "s3cret!", ops.password)
	assert.Contains(t, out, "Admin root@uni.edu created with id 3")

	readPasswordFunc = func(int) ([]byte, error) { return nil, nil }
	ops = &fakeOps{}
	_, err = execute(t, ops, "create-admin", "--email", "root@uni.edu")
	assert.EqualError(t, err, "password must not be empty")
	assert.False(t, ops.closed)

	_, err = execute(t, &fakeOps{}, "create-admin")
	assert.Error(t, err)
}

func TestResetLink(t *testing.T) {
	ops := &fakeOps{}
	out, err := execute(t, ops, "reset-link", "--user-id", "12", "--role", "Faculty")
	require.NoError(t, err)
	assert.Equal(t, int64(12), ops.resetUser)
	assert.Equal(t, models.RoleFaculty, ops.resetRole)
	assert.Contains(t, out, "http://localhost:3000/reset-password/abc")
	assert.Contains(t, out, "Expires at 2026-01-02 03:04 UTC")

	_, err = execute(t, &fakeOps{}, "reset-link", "--user-id", "12", "--role", "janitor")
	assert.EqualError(t, err, `invalid role "janitor": must be student, faculty or admin`)

	_, err = execute(t, &fakeOps{}, "reset-link", "--user-id", "0", "--role", "student")
	assert.EqualError(t, err, "--user-id must be positive")
}
