package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

// DefaultProjectTypes are inserted on startup when missing
var DefaultProjectTypes = []models.ProjectType{
	{Name: "Major", Description: strPtr("Final year major project")},
	{Name: "Minor", Description: strPtr("Minor project")},
	{Name: "Research", Description: strPtr("Research oriented project")},
}

func strPtr(s string) *string { return &s }

// ProjectTypeStore is the part of the project type repository seeding needs
type ProjectTypeStore interface {
	List(ctx context.Context) ([]*models.ProjectType, error)
	Create(ctx context.Context, pt *models.ProjectType) error
}

// StaffCreator creates staff accounts with the usual account validation
type StaffCreator interface {
	CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*models.Staff, error)
}

// AdminAccount describes the optional default admin
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// CreateDefaultData inserts the default project types that do not exist yet.
// Every failure is collected; the remaining types are still attempted.
func CreateDefaultData(ctx context.Context, types ProjectTypeStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (project types)...")

	existing, err := types.List(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, pt := range existing {
		have[strings.ToLower(pt.Name)] = true
	}

	var finalErr error
	for _, def := range DefaultProjectTypes {
		if have[strings.ToLower(def.Name)] {
			continue
		}
		pt := def
		if err := types.Create(ctx, &pt); err != nil {
			lgr.Error().Err(err).Str("name", pt.Name).Msg("Error creating project type")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("name", pt.Name).Int64("id", pt.ID).Msg("Default project type created")
	}
	return finalErr
}

// EnsureAdmin creates the admin account unless its email is already taken.
// It reports whether a new account was created.
func EnsureAdmin(ctx context.Context, users StaffCreator, account AdminAccount, lgr zerolog.Logger) (bool, error) {
	if account.Email == "" {
		return false, nil
	}
	name := account.Name
	if name == "" {
		name = "Administrator"
	}

	staff, err := users.CreateStaff(ctx, &dto.CreateStaffRequest{
		Name:     name,
		Email:    account.Email,
		Password: account.Password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Str("email", account.Email).Msg("Default admin already exists")
			return false, nil
		}
		return false, err
	}
	lgr.Info().Int64("id", staff.ID).Str("email", staff.Email).Msg("Default admin created")
	return true, nil
}
