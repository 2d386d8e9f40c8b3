package employee

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go-attendance/internal/department"
	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/user"
	usererrors "go-attendance/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	// EnsureForUser resolves the employee profile for an identity, creating
	// one on first access. Safe to call from every entry point: repeated and
	// concurrent calls land on the same row.
	EnsureForUser(ctx context.Context, userID uint) (*Employee, error)

	// EnsureEmployeeID is EnsureForUser for callers that only need the key.
	EnsureEmployeeID(ctx context.Context, userID uint) (uint, error)

	GetProfile(ctx context.Context, userID uint) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (ProfileResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	users       user.Repository
	departments department.Service
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, departments department.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		users:       users,
		departments: departments,
		logger:      l,
	}
}

func (s *service) EnsureForUser(ctx context.Context, userID uint) (*Employee, error) {
	e, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dept, err := s.departments.Default(ctx)
	if err != nil {
		return nil, err
	}

	fresh := &Employee{
		UserID:       userID,
		EmployeeID:   GeneratedCode(userID),
		DepartmentID: &dept.ID,
	}
	if err := s.repo.CreateIfAbsent(ctx, fresh); err != nil {
		return nil, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee profile created lazily",
		zap.Uint("user_id", userID),
		zap.String("employee_id", fresh.EmployeeID),
	)

	// Refetch: a concurrent caller may have won the insert.
	e, err = s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return e, nil
}

func (s *service) EnsureEmployeeID(ctx context.Context, userID uint) (uint, error) {
	e, err := s.EnsureForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (s *service) GetProfile(ctx context.Context, userID uint) (ProfileResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, usererrors.ErrUserNotFound
		}
		return ProfileResponse{}, err
	}

	e, err := s.EnsureForUser(ctx, userID)
	if err != nil {
		return ProfileResponse{}, err
	}

	return mapToProfileResponse(u, e), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (ProfileResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, usererrors.ErrUserNotFound
		}
		return ProfileResponse{}, err
	}

	e, err := s.EnsureForUser(ctx, userID)
	if err != nil {
		return ProfileResponse{}, err
	}

	// The login key must stay in the normalized form Login queries by.
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Both sub-forms validate before either persists.
	var fieldErrs FieldErrors

	emailTaken, err := s.users.ExistsByEmail(ctx, email, u.ID)
	if err != nil {
		return ProfileResponse{}, err
	}
	if emailTaken {
		fieldErrs = append(fieldErrs, FieldError{Field: "email", Message: usererrors.ErrEmailAlreadyRegistered.Message})
	}

	codeTaken, err := s.repo.ExistsByEmployeeID(ctx, req.EmployeeID, e.ID)
	if err != nil {
		return ProfileResponse{}, err
	}
	if codeTaken {
		fieldErrs = append(fieldErrs, FieldError{Field: "employee_id", Message: employeeerrors.ErrEmployeeIDTaken.Message})
	}

	var deptID *uint
	if req.DepartmentID != nil {
		dept, err := s.departments.GetByID(ctx, *req.DepartmentID)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: "department", Message: "Department not found"})
		} else {
			deptID = &dept.ID
		}
	}

	if len(fieldErrs) > 0 {
		return ProfileResponse{}, fieldErrs
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Email = email
	if err := s.users.WithTx(tx).Update(ctx, u); err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	e.EmployeeID = req.EmployeeID
	e.DepartmentID = deptID
	e.Phone = req.Phone
	e.Address = req.Address
	if req.ProfilePicture != "" {
		e.ProfilePicture = req.ProfilePicture
	}
	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, e); err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("profile updated", zap.Uint("user_id", userID))

	// Reload so the response carries the department relation.
	e, err = s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToProfileResponse(u, e), nil
}

func mapToProfileResponse(u *user.User, e *Employee) ProfileResponse {
	resp := ProfileResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Email:          u.Email,
		DepartmentID:   e.DepartmentID,
		Phone:          e.Phone,
		Address:        e.Address,
		ProfilePicture: e.ProfilePicture,
		DateJoined:     e.DateJoined.Format("2006-01-02"),
	}
	if e.Department != nil {
		name := e.Department.Name
		resp.Department = &name
	}
	return resp
}
