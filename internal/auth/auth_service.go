package auth

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	autherrors "go-attendance/internal/auth/errors"
	"go-attendance/internal/department"
	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/user"
	usererrors "go-attendance/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Login(ctx context.Context, email, password string) (accessToken string, resp AuthResponse, err error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uint) (AuthResponse, error)

	// CheckSession resolves the identity behind an already issued token, so
	// the login endpoint can short-circuit for authenticated visitors.
	CheckSession(ctx context.Context, token string) (AuthResponse, error)
}

type service struct {
	db          *sql.DB
	users       user.Repository
	employees   employee.Repository
	profiles    employee.Service
	departments department.Service
	rdb         *redis.Client
	secret      string
	tokenTTL    time.Duration
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	users user.Repository,
	employees employee.Repository,
	profiles employee.Service,
	departments department.Service,
	rdb *redis.Client,
	secret string,
	tokenTTL time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:          db,
		users:       users,
		employees:   employees,
		profiles:    profiles,
		departments: departments,
		rdb:         rdb,
		secret:      secret,
		tokenTTL:    tokenTTL,
		logger:      l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	employeeID := strings.TrimSpace(req.EmployeeID)
	fullName := strings.TrimSpace(req.FullName)

	// Binding already enforced presence and the confirmation; the recheck
	// keeps the guarantee for non-HTTP callers.
	if req.Password != req.PasswordConfirm {
		return RegisterResponse{}, autherrors.ErrPasswordMismatch
	}

	emailTaken, err := s.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return RegisterResponse{}, err
	}
	if emailTaken {
		return RegisterResponse{}, usererrors.ErrEmailAlreadyRegistered
	}

	codeTaken, err := s.employees.ExistsByEmployeeID(ctx, employeeID, 0)
	if err != nil {
		return RegisterResponse{}, err
	}
	if codeTaken {
		return RegisterResponse{}, employeeerrors.ErrEmployeeIDTaken
	}

	warning := ""
	dept, err := s.departments.GetByID(ctx, req.Department)
	if err != nil {
		dept, err = s.departments.Default(ctx)
		if err != nil {
			return RegisterResponse{}, err
		}
		warning = "Selected department not found, assigned to " + dept.Name + " department"
		log.Warn("register department fallback",
			zap.Uint("requested", req.Department),
			zap.String("assigned", dept.Name),
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResponse{}, err
	}

	firstName, lastName := user.SplitFullName(fullName)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RegisterResponse{}, err
	}
	defer tx.Rollback()

	u := &user.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
		return RegisterResponse{}, mapRepositoryError(err)
	}

	e := &employee.Employee{
		UserID:       u.ID,
		EmployeeID:   employeeID,
		DepartmentID: &dept.ID,
	}
	if err := s.employees.WithTx(tx).Create(ctx, e); err != nil {
		return RegisterResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return RegisterResponse{}, err
	}

	log.Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.String("employee_id", e.EmployeeID),
	)

	e.Department = dept
	resp := RegisterResponse{User: mapToAuthResponse(u, e)}

	// Auto-login. The account exists either way; a token failure only means
	// the user has to log in manually.
	token, err := s.generateToken(u.ID, e.ID)
	if err != nil {
		log.Error("register auto-login failed", zap.Error(err))
		resp.Message = "Registration successful! Please login."
		resp.Warning = warning
		return resp, nil
	}

	resp.AccessToken = token
	resp.Message = "Registration successful! Welcome to the system."
	resp.Warning = warning
	return resp, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// Heal a missing profile before the session starts.
	e, err := s.profiles.EnsureForUser(ctx, u.ID)
	if err != nil {
		return "", AuthResponse{}, err
	}

	token, err := s.generateToken(u.ID, e.ID)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	contextutil.GetLogger(ctx, s.logger).Info("user logged in", zap.Uint("user_id", u.ID))

	return token, mapToAuthResponse(u, e), nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" || s.rdb == nil {
		return nil
	}

	claims, err := s.parseClaims(token)
	if err != nil {
		// Nothing to revoke for an unusable token.
		return nil
	}

	// Hold the token on the denylist until it would have expired anyway.
	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}

	return s.rdb.Set(ctx, middleware.TokenDenylistKey(token), "revoked", ttl).Err()
}

func (s *service) Me(ctx context.Context, userID uint) (AuthResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, usererrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}

	e, err := s.profiles.EnsureForUser(ctx, userID)
	if err != nil {
		return AuthResponse{}, err
	}

	return mapToAuthResponse(u, e), nil
}

func (s *service) CheckSession(ctx context.Context, token string) (AuthResponse, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidToken
	}

	if s.rdb != nil {
		if exists, err := s.rdb.Exists(ctx, middleware.TokenDenylistKey(token)).Result(); err == nil && exists > 0 {
			return AuthResponse{}, autherrors.ErrInvalidToken
		}
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil || userID == 0 {
		return AuthResponse{}, autherrors.ErrInvalidToken
	}

	return s.Me(ctx, uint(userID))
}

func (s *service) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *service) generateToken(userID, employeeID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     strconv.FormatUint(uint64(userID), 10),
		"employee_id": strconv.FormatUint(uint64(employeeID), 10),
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func mapToAuthResponse(u *user.User, e *employee.Employee) AuthResponse {
	resp := AuthResponse{
		ID:         u.ID,
		EmployeeID: e.EmployeeID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   u.FullName(),
	}
	if e.Department != nil {
		name := e.Department.Name
		resp.Department = &name
	}
	return resp
}
