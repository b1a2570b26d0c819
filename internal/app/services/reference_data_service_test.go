package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

type fakeDepartments struct {
	byID   map[int64]*models.Department
	nextID int64
}

func (f *fakeDepartments) Create(_ context.Context, d *models.Department) error {
	for _, existing := range f.byID {
		if existing.Name == d.Name {
			return apperrors.ErrDuplicateName
		}
	}
	f.nextID++
	d.ID = f.nextID
	f.byID[d.ID] = d
	return nil
}

func (f *fakeDepartments) GetByID(_ context.Context, id int64) (*models.Department, error) {
	if d, ok := f.byID[id]; ok {
		return d, nil
	}
	return nil, apperrors.ErrDepartmentNotFound
}

func (f *fakeDepartments) List(_ context.Context) ([]*models.Department, error) {
	out := []*models.Department{}
	for _, d := range f.byID {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDepartments) Update(_ context.Context, d *models.Department) error {
	if _, ok := f.byID[d.ID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	f.byID[d.ID] = d
	return nil
}

func (f *fakeDepartments) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeYears struct {
	byID   map[int64]*models.AcademicYear
	nextID int64
}

func (f *fakeYears) clearCurrent(except int64) {
	for id, y := range f.byID {
		if id != except {
			y.IsCurrent = false
		}
	}
}

func (f *fakeYears) Create(_ context.Context, y *models.AcademicYear) error {
	f.nextID++
	y.ID = f.nextID
	f.byID[y.ID] = y
	if y.IsCurrent {
		f.clearCurrent(y.ID)
	}
	return nil
}

func (f *fakeYears) GetByID(_ context.Context, id int64) (*models.AcademicYear, error) {
	if y, ok := f.byID[id]; ok {
		return y, nil
	}
	return nil, apperrors.ErrAcademicYearNotFound
}

func (f *fakeYears) GetCurrent(_ context.Context) (*models.AcademicYear, error) {
	for _, y := range f.byID {
		if y.IsCurrent {
			return y, nil
		}
	}
	return nil, apperrors.ErrAcademicYearNotFound
}

func (f *fakeYears) List(_ context.Context) ([]*models.AcademicYear, error) {
	out := []*models.AcademicYear{}
	for _, y := range f.byID {
		out = append(out, y)
	}
	return out, nil
}

func (f *fakeYears) Update(_ context.Context, y *models.AcademicYear) error {
	if _, ok := f.byID[y.ID]; !ok {
		return apperrors.ErrAcademicYearNotFound
	}
	f.byID[y.ID] = y
	if y.IsCurrent {
		f.clearCurrent(y.ID)
	}
	return nil
}

func (f *fakeYears) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func TestDepartmentLifecycle(t *testing.T) {
	repo := &fakeDepartments{byID: map[int64]*models.Department{}}
	svc := NewDepartmentService(repo)
	ctx := context.Background()

	_, err := svc.CreateDepartment(ctx, "  ", "x")
	assert.Equal(t, "Department name is required.", messageOf(err))

	d, err := svc.CreateDepartment(ctx, " Computer Engineering ", "ceng")
	require.NoError(t, err)
	assert.Equal(t, "Computer Engineering", d.Name)
	assert.Equal(t, "CENG", *d.Code)

	_, err = svc.CreateDepartment(ctx, "Computer Engineering", "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateName)

	updated, err := svc.UpdateDepartment(ctx, d.ID, "Software Engineering", "")
	require.NoError(t, err)
	assert.Equal(t, "Software Engineering", updated.Name)
	assert.Nil(t, updated.Code)

	require.NoError(t, svc.DeleteDepartment(ctx, d.ID))
	_, err = svc.GetDepartmentByID(ctx, d.ID)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestAcademicYearCurrentFlag(t *testing.T) {
	repo := &fakeYears{byID: map[int64]*models.AcademicYear{}}
	svc := NewAcademicYearService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.AcademicYearRequest{YearName: "2024-2025", StartDate: "2025-06-30", EndDate: "2024-09-01"})
	assert.Equal(t, "End date must be after start date.", messageOf(err))

	_, err = svc.Create(ctx, &dto.AcademicYearRequest{YearName: "2024-2025", StartDate: "01/09/2024", EndDate: "2025-06-30"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	first, err := svc.Create(ctx, &dto.AcademicYearRequest{YearName: "2024-2025", StartDate: "2024-09-01", EndDate: "2025-06-30", IsCurrent: true})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &dto.AcademicYearRequest{YearName: "2025-2026", StartDate: "2025-09-01", EndDate: "2026-06-30", IsCurrent: true})
	require.NoError(t, err)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
	assert.False(t, repo.byID[first.ID].IsCurrent)
}
