package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/auth"
	"github.com/yigit/projecthub/internal/pkg/helpers"
	"github.com/yigit/projecthub/internal/pkg/validation"
)

const msgInvalidCredentials = "Invalid email, password or role."

// AuthService handles registration, login and token rotation for students and staff
type AuthService struct {
	students   StudentStore
	staff      StaffStore
	tokens     RefreshTokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	students StudentStore,
	staff StaffStore,
	tokens RefreshTokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		students:   students,
		staff:      staff,
		tokens:     tokens,
		jwtService: jwtService,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

func validateRegistration(req *dto.RegisterRequest) error {
	if !validation.MinLength(req.Name, validation.NameMinLength) {
		return apperrors.NewValidationError("Name must be at least 2 characters")
	}
	if !validation.IsEmail(req.Email) {
		return apperrors.NewValidationError("Invalid email address")
	}
	if !validation.IsPhone(req.Phone) {
		return apperrors.NewValidationError("Phone number must be exactly 10 digits")
	}
	if len(req.Password) < validation.PasswordMinLength {
		return apperrors.NewValidationError("Password must be at least 8 characters")
	}
	return nil
}

// Register creates a student account and logs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    helpers.NullIfEmpty(req.Phone),
		Password: hash,
		Skills:   []string{},
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
				"Email already registered. Please use a different email or login.")
		}
		s.logger.Error().Err(err).Str("email", student.Email).Msg("Failed to register student")
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info().Int64("userID", student.ID).Msg("Student registered")
	return s.issueTokens(ctx, &models.Account{ID: student.ID, Name: student.Name, Email: student.Email, Role: models.RoleStudent})
}

// findAccount loads the login view of an account for the requested role
func (s *AuthService) findAccount(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	if role == models.RoleStudent {
		student, err := s.students.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &models.Account{ID: student.ID, Name: student.Name, Email: student.Email, Password: student.Password, Role: models.RoleStudent}, nil
	}

	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if role == models.RoleAdmin && staff.Role != models.RoleAdmin {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &models.Account{ID: staff.ID, Name: staff.Name, Email: staff.Email, Password: staff.Password, Role: staff.Role}, nil
}

// Login authenticates an account. Every failure yields the same invalid credentials error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	invalid := apperrors.NewCustomError(apperrors.ErrInvalidCredentials, msgInvalidCredentials)
	if !req.Role.Valid() {
		return nil, invalid
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	account, err := s.findAccount(ctx, email, req.Role)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound, apperrors.ErrStaffNotFound, apperrors.ErrInvalidCredentials) {
			s.logger.Debug().Str("email", email).Str("role", string(req.Role)).Msg("Login rejected")
			return nil, invalid
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, req.Password) {
		s.logger.Debug().Str("email", email).Msg("Login rejected: wrong password")
		return nil, invalid
	}

	return s.issueTokens(ctx, account)
}

// issueTokens signs an access token carrying the stored role and persists a refresh token
func (s *AuthService) issueTokens(ctx context.Context, account *models.Account) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID: account.ID,
		Email:  account.Email,
		Role:   string(account.Role),
	})
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, &models.RefreshToken{
		Token:     pair.RefreshToken,
		UserID:    account.ID,
		UserRole:  account.Role,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
		User: &dto.UserResponse{
			ID:    account.ID,
			Name:  account.Name,
			Email: account.Email,
			Role:  account.Role,
		},
	}, nil
}

// accountByID loads the login view of an account by id and role
func (s *AuthService) accountByID(ctx context.Context, userID int64, role models.Role) (*models.Account, error) {
	if role == models.RoleStudent {
		student, err := s.students.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &models.Account{ID: student.ID, Name: student.Name, Email: student.Email, Role: models.RoleStudent}, nil
	}
	staff, err := s.staff.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Account{ID: staff.ID, Name: staff.Name, Email: staff.Email, Role: staff.Role}, nil
}

// RefreshToken rotates a refresh token: the old one is revoked and a new pair issued
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound, apperrors.ErrTokenRevoked, apperrors.ErrTokenExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	account, err := s.accountByID(ctx, stored.UserID, stored.UserRole)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound, apperrors.ErrStaffNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	if err := s.tokens.Consume(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, account)
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

// Profile returns the caller's profile
func (s *AuthService) Profile(ctx context.Context, userID int64, role models.Role) (*dto.ProfileResponse, error) {
	if role == models.RoleStudent {
		st, err := s.students.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &dto.ProfileResponse{
			ID: st.ID, Name: st.Name, Email: st.Email, Role: models.RoleStudent,
			Phone: st.Phone, Description: st.Description, Skills: st.Skills, DepartmentID: st.DepartmentID,
		}, nil
	}

	staff, err := s.staff.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{
		ID: staff.ID, Name: staff.Name, Email: staff.Email, Role: staff.Role,
		Phone: staff.Phone, Description: staff.Description, Skills: staff.Skills, DepartmentID: staff.DepartmentID,
	}, nil
}
