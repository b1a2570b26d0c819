package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/auth"
)

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "projecthub-test",
	})
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password)
	require.NoError(t, err)
	return h
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeStudents, *fakeRefreshTokens) {
	students := newFakeStudents(&models.Student{ID: 1, Name: "Ayşe", Email: "ayse@uni.edu", Password: hashed(t, "password1")})
	staff := newFakeStaff(
		&models.Staff{ID: 7, Name: "Dr. Kaya", Email: "kaya@uni.edu", Password: hashed(t, "facultypw"), Role: models.RoleFaculty},
		&models.Staff{ID: 8, Name: "Admin", Email: "admin@uni.edu", Password: hashed(t, "adminpass"), Role: models.RoleAdmin},
	)
	tokens := newFakeRefreshTokens()
	return NewAuthService(students, staff, tokens, newTestJWT(), testLogger), students, tokens
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		req dto.RegisterRequest
		msg string
	}{
		{dto.RegisterRequest{Name: "A", Email: "a@uni.edu", Phone: "5551234567", Password: "password1"}, "Name must be at least 2 characters"},
		{dto.RegisterRequest{Name: "Ali", Email: "not-mail", Phone: "5551234567", Password: "password1"}, "Invalid email address"},
		{dto.RegisterRequest{Name: "Ali", Email: "a@uni.edu", Phone: "555", Password: "password1"}, "Phone number must be exactly 10 digits"},
		{dto.RegisterRequest{Name: "Ali", Email: "a@uni.edu", Phone: "5551234567", Password: "short"}, "Password must be at least 8 characters"},
	}
	for _, tt := range tests {
		_, err := svc.Register(ctx, &tt.req)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		msg, _ := apperrors.Message(err)
		assert.Equal(t, tt.msg, msg)
	}
}

func TestRegisterCreatesStudentAndTokens(t *testing.T) {
	svc, students, tokens := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Mehmet Demir", Email: "Mehmet@Uni.edu", Phone: "5551234567", Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.Equal(t, "mehmet@uni.edu", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Contains(t, tokens.tokens, resp.RefreshToken)

	stored := students.byID[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password1", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "password1"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Ayşe Again", Email: "ayse@uni.edu", Phone: "5551234567", Password: "password1",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	msg, _ := apperrors.Message(err)
	assert.Equal(t, "Email already registered. Please use a different email or login.", msg)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ayse@uni.edu", Password: "password1", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.User.ID)

	claims, err := newTestJWT().ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student", claims.RoleType)

	resp, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@uni.edu", Password: "adminpass", Role: models.RoleFaculty})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role, "token carries the stored role")

	failures := []dto.LoginRequest{
		{Email: "ayse@uni.edu", Password: "wrong-pass", Role: models.RoleStudent},
		{Email: "nobody@uni.edu", Password: "password1", Role: models.RoleStudent},
		{Email: "ayse@uni.edu", Password: "password1", Role: models.RoleFaculty},
		{Email: "kaya@uni.edu", Password: "facultypw", Role: models.RoleAdmin},
	}
	for _, req := range failures {
		_, err := svc.Login(ctx, &req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, req.Email)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, tokens := newAuthFixture(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, &dto.LoginRequest{Email: "kaya@uni.edu", Password: "facultypw", Role: models.RoleFaculty})
	require.NoError(t, err)

	second, err := svc.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.True(t, tokens.revoked[first.RefreshToken])

	_, err = svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	require.NoError(t, svc.Logout(ctx, second.RefreshToken))
	_, err = svc.RefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshLosesRaceToConcurrentRotation(t *testing.T) {
	svc, _, tokens := newAuthFixture(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, &dto.LoginRequest{Email: "ayse@uni.edu", Password: "password1", Role: models.RoleStudent})
	require.NoError(t, err)
	issued := len(tokens.tokens)

	// another request rotates the token after this one has already loaded it
	tokens.beforeConsume = func(token string) { tokens.revoked[token] = true }

	resp, err := svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	assert.Nil(t, resp)
	assert.Len(t, tokens.tokens, issued)
}

func TestProfile(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	p, err := svc.Profile(ctx, 1, models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", p.Name)

	p, err = svc.Profile(ctx, 7, models.RoleFaculty)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFaculty, p.Role)

	_, err = svc.Profile(ctx, 99, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
