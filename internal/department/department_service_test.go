package department

import (
	"context"
	"testing"

	departmenterrors "go-attendance/internal/department/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	departments []Department
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Department, error) {
	return f.departments, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*Department, error) {
	for i := range f.departments {
		if f.departments[i].ID == id {
			return &f.departments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindFirst(ctx context.Context) (*Department, error) {
	if len(f.departments) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &f.departments[0], nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.departments)), nil
}

func (f *fakeRepo) GetOrCreate(ctx context.Context, name, description string) (*Department, error) {
	for i := range f.departments {
		if f.departments[i].Name == name {
			return &f.departments[i], nil
		}
	}
	dept := Department{ID: uint(len(f.departments) + 1), Name: name, Description: description}
	f.departments = append(f.departments, dept)
	return &f.departments[len(f.departments)-1], nil
}

func TestService_GetAll_SeedsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)

	depts, seeded, err := svc.GetAll(ctx)
	assert.NoError(t, err)
	assert.True(t, seeded)
	assert.Len(t, depts, 5)
	assert.Equal(t, "HR", depts[0].Name)

	// Second call finds the registry populated and leaves it alone.
	depts, seeded, err = svc.GetAll(ctx)
	assert.NoError(t, err)
	assert.False(t, seeded)
	assert.Len(t, depts, 5)
}

func TestService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeRepo{})

	_, err := svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}

func TestService_Default_PrefersExisting(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{departments: []Department{{ID: 1, Name: "HR"}}}
	svc := NewService(repo)

	dept, err := svc.Default(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "HR", dept.Name)
}

func TestService_Default_CreatesGeneralWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)

	dept, err := svc.Default(ctx)
	assert.NoError(t, err)
	assert.Equal(t, DefaultName, dept.Name)
	assert.Equal(t, DefaultDescription, dept.Description)
	assert.Len(t, repo.departments, 1)
}
