package attendance

import (
	"net/http"
	"strconv"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
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

func (h *Handler) MarkStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.MarkStatus(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Mark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req MarkAttendanceRequest
	if err := c.ShouldBind(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, "VALIDATION_ERROR", mapped.Message, nil)
		return
	}

	message, record, err := h.service.Apply(c.Request.Context(), userID, req.Action)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, message, record)
}

func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	total := len(history.Records)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	meta := response.NewPaginationMeta(int64(total), page, pageSize)
	response.Success(c, http.StatusOK, HistoryResponse{
		Records: history.Records[start:end],
		Totals:  history.Totals,
	}, &meta)
}

func (h *Handler) Export(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	f, filename, err := h.service.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Transfer-Encoding", "binary")
	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; nothing sensible left to send.
		c.Abort()
	}
}
