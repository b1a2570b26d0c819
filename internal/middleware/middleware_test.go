package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "projecthub-test",
	})
}

func accessToken(t *testing.T, jwt *auth.JWTService, id int64, role models.Role) string {
	t.Helper()
	pair, err := jwt.GenerateTokenPair(auth.Subject{UserID: id, Email: "u@uni.edu", Role: string(role)})
	require.NoError(t, err)
	return pair.AccessToken
}

func newAuthRouter(jwt *auth.JWTService, roles ...models.Role) *gin.Engine {
	m := NewAuthMiddleware(jwt)
	r := gin.New()
	r.GET("/me", m.JWTAuth(), m.RoleRequired(roles...), func(c *gin.Context) {
		id, role := Identity(c)
		c.String(http.StatusOK, "%d:%s", id, role)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwt := newJWT()
	r := newAuthRouter(jwt, models.RoleStudent, models.RoleFaculty)
	token := accessToken(t, jwt, 42, models.RoleFaculty)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"bearer header", "/me", "Bearer " + token, http.StatusOK, "42:faculty"},
		{"query token", "/me?token=" + token, "", http.StatusOK, "42:faculty"},
		{"missing", "/me", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "/me", "Basic abc", http.StatusUnauthorized, ""},
		{"garbage token", "/me", "Bearer not.a.jwt", http.StatusUnauthorized, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestRoleRequired(t *testing.T) {
	jwt := newJWT()
	r := newAuthRouter(jwt, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwt, 7, models.RoleStudent))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwt, 1, models.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{apperrors.NewValidationError("Name must be at least 2 characters"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Name must be at least 2 characters"},
		{apperrors.NewForbiddenError("You do not have access to this group."), http.StatusForbidden, dto.ErrorCodeForbidden, "You do not have access to this group."},
		{fmt.Errorf("load: %w", apperrors.ErrGroupNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
		{apperrors.NewCustomError(apperrors.ErrAlreadyInGroup, "You are already in a group."), http.StatusConflict, dto.ErrorCodeConflict, "You are already in a group."},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
		{apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email, password or role."), http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email, password or role."},
		{apperrors.ErrPasswordResetTokenExpired, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.Equal(t, tc.message, resp.Error.Message)
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()), limiter.Middleware())
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	assert.True(t, limiter.Allow("10.0.0.2"), "buckets are per IP")
}

func TestIPRateLimiterResetsBuckets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(0.001, 1)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("ip"))
	assert.False(t, limiter.Allow("ip"))

	now = now.Add(2 * time.Hour)
	assert.True(t, limiter.Allow("ip"))
}
