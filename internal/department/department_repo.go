package department

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id uint) (*Department, error)
	FindFirst(ctx context.Context) (*Department, error)
	Count(ctx context.Context) (int64, error)
	GetOrCreate(ctx context.Context, name, description string) (*Department, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).Order("id ASC").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) FindFirst(ctx context.Context) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).Order("id ASC").First(&dept).Error
	return &dept, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Department{}).Count(&count).Error
	return count, err
}

// GetOrCreate resolves a department by name, creating it atomically when
// missing. The no-op DO UPDATE makes RETURNING yield the row either way, so
// concurrent callers for the same name all land on a single record.
func (r *repository) GetOrCreate(ctx context.Context, name, description string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO departments (name, description, created_at, updated_at)
		VALUES (?, ?, now(), now())
		ON CONFLICT (name) DO UPDATE
		SET updated_at = now()
		RETURNING id, name, description, created_at, updated_at
	`, name, description).Scan(&dept).Error

	if err != nil {
		return nil, err
	}

	return &dept, nil
}
