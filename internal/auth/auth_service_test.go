package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	autherrors "go-attendance/internal/auth/errors"
	"go-attendance/internal/department"
	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/middleware"
	"go-attendance/internal/user"
	usererrors "go-attendance/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUsers struct {
	byEmail    map[string]*user.User
	emailTaken bool
	created    *user.User
}

func (f *fakeUsers) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUsers) Create(ctx context.Context, u *user.User) error {
	u.ID = 1
	copied := *u
	f.created = &copied
	return nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetByID(ctx context.Context, id uint) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return f.emailTaken, nil
}

type fakeEmployees struct {
	codeTaken bool
	created   *employee.Employee
}

func (f *fakeEmployees) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployees) Create(ctx context.Context, e *employee.Employee) error {
	e.ID = 10
	copied := *e
	f.created = &copied
	return nil
}

func (f *fakeEmployees) CreateIfAbsent(ctx context.Context, e *employee.Employee) error {
	return f.Create(ctx, e)
}

func (f *fakeEmployees) FindByUserID(ctx context.Context, userID uint) (*employee.Employee, error) {
	if f.created == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.created, nil
}

func (f *fakeEmployees) Update(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployees) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID uint) (bool, error) {
	return f.codeTaken, nil
}

type fakeProfiles struct {
	employee *employee.Employee
}

func (f *fakeProfiles) EnsureForUser(ctx context.Context, userID uint) (*employee.Employee, error) {
	return f.employee, nil
}

func (f *fakeProfiles) EnsureEmployeeID(ctx context.Context, userID uint) (uint, error) {
	return f.employee.ID, nil
}

func (f *fakeProfiles) GetProfile(ctx context.Context, userID uint) (employee.ProfileResponse, error) {
	return employee.ProfileResponse{}, nil
}

func (f *fakeProfiles) UpdateProfile(ctx context.Context, userID uint, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	return employee.ProfileResponse{}, nil
}

type fakeDepartments struct {
	departments map[uint]*department.Department
	fallback    *department.Department
}

func (f *fakeDepartments) GetAll(ctx context.Context) ([]department.DepartmentResponse, bool, error) {
	return nil, false, nil
}

func (f *fakeDepartments) GetByID(ctx context.Context, id uint) (*department.Department, error) {
	if d, ok := f.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartments) Default(ctx context.Context) (*department.Department, error) {
	return f.fallback, nil
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		FullName:        "Jane Doe",
		Email:           "Jane.Doe@Example.COM",
		EmployeeID:      "EMP900",
		Department:      2,
		Password:        "secret123",
		PasswordConfirm: "secret123",
	}
}

func TestService_Register_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	users := &fakeUsers{byEmail: map[string]*user.User{}}
	employees := &fakeEmployees{}
	depts := &fakeDepartments{departments: map[uint]*department.Department{
		2: {ID: 2, Name: "IT"},
	}}
	svc := NewService(db, users, employees, &fakeProfiles{}, depts, nil, "test-secret", time.Hour)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	assert.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", users.created.Email)
	assert.Equal(t, "Jane", users.created.FirstName)
	assert.Equal(t, "Doe", users.created.LastName)
	assert.Equal(t, "EMP900", employees.created.EmployeeID)
	assert.Equal(t, uint(2), *employees.created.DepartmentID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Registration successful! Welcome to the system.", resp.Message)
	assert.Empty(t, resp.Warning)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_PasswordMismatch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeUsers{}, &fakeEmployees{}, &fakeProfiles{}, &fakeDepartments{}, nil, "test-secret", time.Hour)

	req := validRegisterRequest()
	req.PasswordConfirm = "different"
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, autherrors.ErrPasswordMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	users := &fakeUsers{emailTaken: true}
	svc := NewService(db, users, &fakeEmployees{}, &fakeProfiles{}, &fakeDepartments{}, nil, "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)

	// Rejected before any write: no transaction expected.
	assert.Nil(t, users.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_DuplicateEmployeeID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employees := &fakeEmployees{codeTaken: true}
	svc := NewService(db, &fakeUsers{}, employees, &fakeProfiles{}, &fakeDepartments{}, nil, "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeIDTaken)
	assert.Nil(t, employees.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_DepartmentFallback(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	users := &fakeUsers{byEmail: map[string]*user.User{}}
	employees := &fakeEmployees{}
	depts := &fakeDepartments{fallback: &department.Department{ID: 9, Name: "General"}}
	svc := NewService(db, users, employees, &fakeProfiles{}, depts, nil, "test-secret", time.Hour)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	assert.NoError(t, err)
	assert.Equal(t, uint(9), *employees.created.DepartmentID)
	assert.Equal(t, "Selected department not found, assigned to General department", resp.Warning)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Login(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	assert.NoError(t, err)

	u := &user.User{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", PasswordHash: string(hashed)}
	users := &fakeUsers{byEmail: map[string]*user.User{"jane@example.com": u}}
	profiles := &fakeProfiles{employee: &employee.Employee{ID: 10, UserID: 1, EmployeeID: "EMP001"}}
	svc := NewService(db, users, &fakeEmployees{}, profiles, &fakeDepartments{}, nil, "test-secret", time.Hour)

	// Email lookup is case and whitespace insensitive.
	token, resp, err := svc.Login(context.Background(), "  Jane@Example.COM ", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, "EMP001", resp.EmployeeID)
}

func TestService_Login_GenericFailure(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	u := &user.User{ID: 1, Email: "jane@example.com", PasswordHash: string(hashed)}
	users := &fakeUsers{byEmail: map[string]*user.User{"jane@example.com": u}}
	svc := NewService(db, users, &fakeEmployees{}, &fakeProfiles{}, &fakeDepartments{}, nil, "test-secret", time.Hour)

	// Unknown account and wrong password are indistinguishable.
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Logout_NoRedis(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeUsers{}, &fakeEmployees{}, &fakeProfiles{}, &fakeDepartments{}, nil, "test-secret", time.Hour)
	assert.NoError(t, svc.Logout(context.Background(), "whatever"))
}

func TestService_Logout_DenylistsToken(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	svc := NewService(db, &fakeUsers{}, &fakeEmployees{}, &fakeProfiles{}, &fakeDepartments{}, rdb, "test-secret", time.Hour)

	// No exp claim, so the denylist entry falls back to the configured TTL.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":     "1",
		"employee_id": "10",
	}).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	redisMock.ExpectSet(middleware.TokenDenylistKey(token), "revoked", time.Hour).SetVal("OK")

	assert.NoError(t, svc.Logout(context.Background(), token))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_Logout_UnusableToken(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	svc := NewService(db, &fakeUsers{}, &fakeEmployees{}, &fakeProfiles{}, &fakeDepartments{}, rdb, "test-secret", time.Hour)

	// Garbage tokens have nothing to revoke; no redis call happens.
	assert.NoError(t, svc.Logout(context.Background(), "not-a-jwt"))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
