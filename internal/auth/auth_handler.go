package auth

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func bearerOrCookieToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	isProd := os.Getenv("APP_ENV") == "production"
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	})
}

func (ctrl *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, "VALIDATION_ERROR", mapped.Message, nil)
		return
	}

	res, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if res.AccessToken != "" {
		setSessionCookie(c, res.AccessToken, 86400)
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (ctrl *Handler) Login(c *gin.Context) {
	// Already-authenticated visitors go straight through, no re-prompt.
	if token := bearerOrCookieToken(c); token != "" {
		if userResp, err := ctrl.service.CheckSession(c.Request.Context(), token); err == nil {
			response.SuccessWithMessage(c, http.StatusOK, "Already logged in", gin.H{
				"user":         userResp,
				"access_token": token,
			})
			return
		}
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please enter both email and password", nil)
		return
	}

	token, userResp, err := ctrl.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	setSessionCookie(c, token, 86400)

	response.SuccessWithMessage(c, http.StatusOK, "Welcome back, "+userResp.FullName+"!", gin.H{
		"user":         userResp,
		"access_token": token,
	})
}

func (ctrl *Handler) Logout(c *gin.Context) {
	token := c.GetString("access_token")
	if token == "" {
		token = bearerOrCookieToken(c)
	}

	if err := ctrl.service.Logout(c.Request.Context(), token); err != nil {
		writeServiceError(c, err)
		return
	}

	setSessionCookie(c, "", -1)
	response.SuccessWithMessage(c, http.StatusOK, "You have been logged out successfully.", nil)
}

func (ctrl *Handler) Me(c *gin.Context) {
	userID, err := strconv.ParseUint(c.GetString("user_id"), 10, 64)
	if err != nil || userID == 0 {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	userResp, err := ctrl.service.Me(c.Request.Context(), uint(userID))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userResp, nil)
}
