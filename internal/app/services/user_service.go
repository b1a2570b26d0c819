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

// UserService handles account administration, profiles and skill search
type UserService struct {
	students StudentStore
	staff    StaffStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(students StudentStore, staff StaffStore, logger zerolog.Logger) *UserService {
	return &UserService{
		students: students,
		staff:    staff,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

func validateNewAccount(name, email, password string) error {
	if !validation.MinLength(name, validation.NameMinLength) {
		return apperrors.NewValidationError("Name must be at least 2 characters.")
	}
	if !validation.IsEmail(email) {
		return apperrors.NewValidationError("Invalid email address")
	}
	if len(password) < validation.AdminPasswordMinLength {
		return apperrors.NewValidationError("Password must be at least 6 characters.")
	}
	return nil
}

// CreateStudent creates a student account on behalf of an admin
func (s *UserService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if err := validateNewAccount(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		Skills:   []string{},
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Failed to create student. Email might already exist.")
		}
		return nil, err
	}
	s.logger.Info().Int64("userID", student.ID).Msg("Student created by admin")
	return student, nil
}

// CreateStaff creates a faculty or admin account
func (s *UserService) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*models.Staff, error) {
	if err := validateNewAccount(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}
	if !req.Role.IsStaff() {
		return nil, apperrors.NewValidationError("Role must be faculty or admin.")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &models.Staff{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		Role:     req.Role,
		Skills:   []string{},
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Failed to create staff. Email might already exist.")
		}
		return nil, err
	}
	s.logger.Info().Int64("userID", staff.ID).Str("role", string(staff.Role)).Msg("Staff member created by admin")
	return staff, nil
}

// ListStudents returns one page of students
func (s *UserService) ListStudents(ctx context.Context, page helpers.Page) ([]*models.Student, int64, error) {
	return s.students.List(ctx, page.Offset(), page.Limit())
}

// ListStaff returns one page of staff, optionally filtered by role
func (s *UserService) ListStaff(ctx context.Context, role *models.Role, page helpers.Page) ([]*models.Staff, int64, error) {
	if role != nil && !role.IsStaff() {
		return nil, 0, apperrors.NewValidationError("Role must be faculty or admin.")
	}
	return s.staff.List(ctx, role, page.Offset(), page.Limit())
}

// ListFaculty returns the faculty members students can pick as a guide
func (s *UserService) ListFaculty(ctx context.Context) ([]models.FacultyOption, error) {
	return s.staff.ListFaculty(ctx)
}

// UpdateProfile edits the caller's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, role models.Role, req *dto.UpdateProfileRequest) error {
	if !validation.MinLength(req.Name, validation.NameMinLength) {
		return apperrors.NewValidationError("Name must be at least 2 characters.")
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" && !validation.IsPhone(phone) {
		return apperrors.NewValidationError("Phone number must be exactly 10 digits")
	}

	update := models.ProfileUpdate{
		Name:        strings.TrimSpace(req.Name),
		Phone:       helpers.NullIfEmpty(req.Phone),
		Description: helpers.NullIfEmpty(req.Description),
		Skills:      validation.NormalizeSkills(req.Skills),
	}

	var err error
	if role == models.RoleStudent {
		err = s.students.UpdateProfile(ctx, userID, update)
	} else {
		err = s.staff.UpdateProfile(ctx, userID, update)
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Str("role", string(role)).Msg("Failed to update profile")
		return err
	}
	return nil
}

// SearchStudentsBySkills returns students whose skills overlap the query. No skills, no results.
func (s *UserService) SearchStudentsBySkills(ctx context.Context, skills []string) ([]*models.StudentSearchResult, error) {
	skills = validation.NormalizeSkills(skills)
	if len(skills) == 0 {
		return []*models.StudentSearchResult{}, nil
	}
	return s.students.SearchBySkills(ctx, skills)
}
