package department

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes exposes the department list publicly: the registration form
// needs it before any session exists.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	departments := r.Group("/departments")
	{
		departments.GET("", h.GetAll)
	}
}
