package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWT() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "projecthub-test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWT()

	pair, err := svc.GenerateTokenPair(Subject{UserID: 5, Email: "guide@uni.test", Role: "faculty"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 3600, pair.ExpiresIn)
	assert.Equal(t, 86400, pair.RefreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "faculty", claims.RoleType)
	assert.Equal(t, "5", claims.Subject)
	assert.Equal(t, "projecthub-test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWT()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	pair, err := svc.GenerateTokenPair(Subject{UserID: 1, Email: "a@b.test", Role: "student"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAndExtractClaims(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_WrongSecretAndMalformed(t *testing.T) {
	pair, err := newTestJWT().GenerateTokenPair(Subject{UserID: 1, Email: "a@b.test", Role: "admin"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "another", AccessTokenExp: time.Hour})
	_, err = other.ValidateAndExtractClaims(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = other.ValidateAndExtractClaims("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)

	_, err = other.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateToken_RejectsIncompleteClaims(t *testing.T) {
	svc := newTestJWT()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 3,
		Email:  "x@y.test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	tok, err = ExtractBearerToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	_, err = ExtractBearerToken("Basic dXNlcg==")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { BcryptCost = 12 })

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 96)
	assert.NotEqual(t, a, b)
}
