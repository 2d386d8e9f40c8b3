package department

import (
	"context"
	"errors"

	departmenterrors "go-attendance/internal/department/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// seedDepartments are created the first time the registration form asks for
// the department list and none exist yet.
var seedDepartments = []Department{
	{Name: "HR", Description: "Human Resources"},
	{Name: "IT", Description: "Information Technology"},
	{Name: "Finance", Description: "Finance & Accounts"},
	{Name: "Marketing", Description: "Marketing & Sales"},
	{Name: "Operations", Description: "Operations"},
}

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	// GetAll lists departments, seeding the defaults when the registry is
	// empty. The second return reports whether seeding happened.
	GetAll(ctx context.Context) ([]DepartmentResponse, bool, error)
	GetByID(ctx context.Context, id uint) (*Department, error)

	// Default is the single fallback-assignment policy: the first existing
	// department, else a freshly created "General" one.
	Default(ctx context.Context) (*Department, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, false, err
	}

	seeded := false
	if count == 0 {
		for _, d := range seedDepartments {
			if _, err := s.repo.GetOrCreate(ctx, d.Name, d.Description); err != nil {
				return nil, false, err
			}
		}
		seeded = true
		s.logger.Info("seeded default departments", zap.Int("count", len(seedDepartments)))
	}

	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, false, err
	}

	return mapToListResponse(depts), seeded, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Department, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, departmenterrors.ErrDepartmentNotFound
		}
		return nil, err
	}
	return dept, nil
}

func (s *service) Default(ctx context.Context) (*Department, error) {
	dept, err := s.repo.FindFirst(ctx)
	if err == nil {
		return dept, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s.logger.Info("no departments exist, creating fallback", zap.String("name", DefaultName))
	return s.repo.GetOrCreate(ctx, DefaultName, DefaultDescription)
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
