package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/auth"
	autherrors "go-attendance/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	registerFn     func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error)
	loginFn        func(ctx context.Context, email, password string) (string, auth.AuthResponse, error)
	logoutFn       func(ctx context.Context, token string) error
	meFn           func(ctx context.Context, userID uint) (auth.AuthResponse, error)
	checkSessionFn func(ctx context.Context, token string) (auth.AuthResponse, error)
}

func (f *fakeService) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	return f.registerFn(ctx, req)
}
func (f *fakeService) Login(ctx context.Context, email, password string) (string, auth.AuthResponse, error) {
	return f.loginFn(ctx, email, password)
}
func (f *fakeService) Logout(ctx context.Context, token string) error {
	return f.logoutFn(ctx, token)
}
func (f *fakeService) Me(ctx context.Context, userID uint) (auth.AuthResponse, error) {
	return f.meFn(ctx, userID)
}
func (f *fakeService) CheckSession(ctx context.Context, token string) (auth.AuthResponse, error) {
	return f.checkSessionFn(ctx, token)
}

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		loginFn: func(ctx context.Context, email, password string) (string, auth.AuthResponse, error) {
			assert.Equal(t, "jane@example.com", email)
			return "token-123", auth.AuthResponse{ID: 1, FullName: "Jane Doe"}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"jane@example.com","password":"secret123"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome back, Jane Doe!")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=token-123")
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		loginFn: func(ctx context.Context, email, password string) (string, auth.AuthResponse, error) {
			return "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestHandler_Login_AlreadyAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkSessionFn: func(ctx context.Context, token string) (auth.AuthResponse, error) {
			assert.Equal(t, "existing-token", token)
			return auth.AuthResponse{ID: 1, FullName: "Jane Doe"}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
	c.Request.Header.Set("Authorization", "Bearer existing-token")
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Already logged in")
}

func TestHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var revoked string
	svc := &fakeService{
		logoutFn: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("access_token", "token-123")
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-123", revoked)
	assert.Contains(t, w.Body.String(), "You have been logged out successfully.")
	// Cookie is cleared.
	assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=;")
}

func TestHandler_Register_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := auth.NewHandler(&fakeService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
