package services

import (
	"context"
	"strings"
	"time"

	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

const dateLayout = "2006-01-02"

// AcademicYearService manages academic years and the current-year flag
type AcademicYearService struct {
	yearRepo AcademicYearStore
}

// NewAcademicYearService creates a new AcademicYearService
func NewAcademicYearService(yearRepo AcademicYearStore) *AcademicYearService {
	return &AcademicYearService{yearRepo: yearRepo}
}

func parseAcademicYear(req *dto.AcademicYearRequest) (*models.AcademicYear, error) {
	name := strings.TrimSpace(req.YearName)
	if name == "" {
		return nil, apperrors.NewValidationError("Year name is required.")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Start date must use the YYYY-MM-DD format.")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("End date must use the YYYY-MM-DD format.")
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("End date must be after start date.")
	}
	return &models.AcademicYear{YearName: name, StartDate: start, EndDate: end, IsCurrent: req.IsCurrent}, nil
}

// Create adds an academic year. Marking it current clears the flag on the others.
func (s *AcademicYearService) Create(ctx context.Context, req *dto.AcademicYearRequest) (*models.AcademicYear, error) {
	year, err := parseAcademicYear(req)
	if err != nil {
		return nil, err
	}
	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// Update rewrites an academic year
func (s *AcademicYearService) Update(ctx context.Context, id int64, req *dto.AcademicYearRequest) (*models.AcademicYear, error) {
	year, err := parseAcademicYear(req)
	if err != nil {
		return nil, err
	}
	year.ID = id
	if err := s.yearRepo.Update(ctx, year); err != nil {
		return nil, err
	}
	return s.yearRepo.GetByID(ctx, id)
}

// List returns academic years, newest name first
func (s *AcademicYearService) List(ctx context.Context) ([]*models.AcademicYear, error) {
	return s.yearRepo.List(ctx)
}

// Current returns the academic year flagged current
func (s *AcademicYearService) Current(ctx context.Context) (*models.AcademicYear, error) {
	return s.yearRepo.GetCurrent(ctx)
}

// Delete removes an academic year
func (s *AcademicYearService) Delete(ctx context.Context, id int64) error {
	return s.yearRepo.Delete(ctx, id)
}
