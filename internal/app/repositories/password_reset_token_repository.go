package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/db"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: db,
	}
}

// Create stores a new password reset token
func (r *PasswordResetTokenRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO password_resets (token, user_id, user_role, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		token.Token, token.UserID, token.UserRole, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// GetByToken retrieves a reset token regardless of its state
func (r *PasswordResetTokenRepository) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.QueryRow(ctx, `
		SELECT id, token, user_id, user_role, expires_at, used, created_at
		FROM password_resets
		WHERE token = $1`, token).Scan(&t.ID, &t.Token, &t.UserID, &t.UserRole, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		return nil, fmt.Errorf("error retrieving password reset token: %w", err)
	}
	return &t, nil
}

// ResetPassword consumes the token and updates the owner's password in one transaction.
// The token must still be unused and unexpired when the transaction runs.
func (r *PasswordResetTokenRepository) ResetPassword(ctx context.Context, token string, passwordHash string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var userID int64
		var role models.Role
		err := tx.QueryRow(ctx, `
			UPDATE password_resets
			SET used = TRUE
			WHERE token = $1 AND used = FALSE AND expires_at > $2
			RETURNING user_id, user_role`, token, time.Now()).Scan(&userID, &role)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrInvalidPasswordResetToken
			}
			return fmt.Errorf("error consuming password reset token: %w", err)
		}

		table := "students"
		if role.IsStaff() {
			table = "staff"
		}
		tag, err := tx.Exec(ctx, `UPDATE `+table+` SET password = $1 WHERE id = $2`, passwordHash, userID)
		if err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
}

// DeleteExpired removes expired tokens and returns how many were removed
func (r *PasswordResetTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_resets WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error deleting expired password reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
