package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/auth"
	"github.com/yigit/projecthub/internal/pkg/email"
	"github.com/yigit/projecthub/internal/pkg/validation"
)

// PasswordResetConfig controls reset link generation
type PasswordResetConfig struct {
	TokenTTL    time.Duration
	LinkBaseURL string
}

// PasswordResetService issues admin-generated reset links and consumes them
type PasswordResetService struct {
	resets   PasswordResetStore
	refresh  RefreshTokenStore
	students StudentStore
	staff    StaffStore
	mailer   email.Mailer
	config   PasswordResetConfig
	now      func() time.Time
	logger   zerolog.Logger
}

// NewPasswordResetService creates a new PasswordResetService. mailer may be nil.
func NewPasswordResetService(
	resets PasswordResetStore,
	refresh RefreshTokenStore,
	students StudentStore,
	staff StaffStore,
	mailer email.Mailer,
	config PasswordResetConfig,
	logger zerolog.Logger,
) *PasswordResetService {
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return &PasswordResetService{
		resets:   resets,
		refresh:  refresh,
		students: students,
		staff:    staff,
		mailer:   mailer,
		config:   config,
		now:      time.Now,
		logger:   logger.With().Str("service", "password_reset").Logger(),
	}
}

type resetRecipient struct {
	name  string
	email string
	role  models.Role
}

func (s *PasswordResetService) recipient(ctx context.Context, userID int64, role models.Role) (*resetRecipient, error) {
	if role == models.RoleStudent {
		st, err := s.students.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &resetRecipient{name: st.Name, email: st.Email, role: models.RoleStudent}, nil
	}
	staff, err := s.staff.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if staff.Role != role {
		return nil, apperrors.ErrStaffNotFound
	}
	return &resetRecipient{name: staff.Name, email: staff.Email, role: staff.Role}, nil
}

// CreateResetLink generates a single-use reset link for an account and mails it when possible
func (s *PasswordResetService) CreateResetLink(ctx context.Context, userID int64, role models.Role) (*dto.ResetLinkResponse, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Invalid user role.")
	}
	rcpt, err := s.recipient(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return nil, err
	}
	record := &models.PasswordResetToken{
		Token:     token,
		UserID:    userID,
		UserRole:  rcpt.role,
		ExpiresAt: s.now().Add(s.config.TokenTTL),
	}
	if err := s.resets.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	resp := &dto.ResetLinkResponse{
		Token:     token,
		Link:      strings.TrimRight(s.config.LinkBaseURL, "/") + "/" + token,
		ExpiresAt: record.ExpiresAt,
	}

	if s.mailer != nil {
		sent, err := s.mailer.SendPasswordReset(ctx, rcpt.email, rcpt.name, resp.Link, record.ExpiresAt)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Reset link created but email delivery failed")
		}
		resp.Emailed = sent
	}

	s.logger.Info().Int64("userID", userID).Str("role", string(rcpt.role)).Msg("Password reset link created")
	return resp, nil
}

// ValidateToken reports who a reset token belongs to, or why it cannot be used
func (s *PasswordResetService) ValidateToken(ctx context.Context, token string) (*dto.ResetTokenStatusResponse, error) {
	record, err := s.resets.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPasswordResetToken) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidPasswordResetToken, "Invalid reset link.")
		}
		return nil, err
	}
	if record.Used {
		return nil, apperrors.NewCustomError(apperrors.ErrPasswordResetTokenUsed, "This reset link has already been used.")
	}
	if !record.ExpiresAt.After(s.now()) {
		return nil, apperrors.NewCustomError(apperrors.ErrPasswordResetTokenExpired, "This reset link has expired.")
	}
	return &dto.ResetTokenStatusResponse{Valid: true, UserID: record.UserID, UserRole: record.UserRole}, nil
}

// ResetPassword sets a new password and consumes the token in one transaction
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewValidationError("Password must be at least 8 characters.")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.resets.ResetPassword(ctx, token, hash); err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidPasswordResetToken, apperrors.ErrUserNotFound) {
			return apperrors.NewCustomError(apperrors.ErrInvalidPasswordResetToken, "Invalid or expired reset link.")
		}
		return err
	}
	s.logger.Info().Msg("Password reset completed")
	return nil
}

// Cleanup deletes expired reset tokens and stale refresh tokens
func (s *PasswordResetService) Cleanup(ctx context.Context) {
	if n, err := s.resets.DeleteExpired(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete expired reset tokens")
	} else if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("Expired reset tokens deleted")
	}

	if s.refresh == nil {
		return
	}
	if n, err := s.refresh.CleanupExpired(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete expired refresh tokens")
	} else if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("Expired refresh tokens deleted")
	}
}

// RunCleanup calls Cleanup every interval until ctx is done
func (s *PasswordResetService) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup(ctx)
		}
	}
}
