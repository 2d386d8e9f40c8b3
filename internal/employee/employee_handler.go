package employee

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service    Service
	uploadsDir string
}

func NewHandler(service Service, uploadsDir string) *Handler {
	return &Handler{service: service, uploadsDir: uploadsDir}
}

func writeServiceError(c *gin.Context, err error) {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Profile update failed", fieldErrs)
		return
	}
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func currentUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.GetString("user_id"), 10, 64)
	if err != nil || id == 0 {
		writeServiceError(c, apperror.ErrUnauthorized)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, "VALIDATION_ERROR", mapped.Message, nil)
		return
	}

	// The picture is stored opaquely; no processing, original name discarded.
	if file, err := c.FormFile("profile_picture"); err == nil && file != nil {
		stored := uuid.New().String() + filepath.Ext(file.Filename)
		dst := filepath.Join(h.uploadsDir, stored)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store profile picture", nil)
			return
		}
		req.ProfilePicture = stored
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Your profile has been updated successfully!", resp)
}
