package attendance

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	attendances := r.Group("/attendances", authMW)
	{
		attendances.GET("", handler.History)
		attendances.GET("/mark", handler.MarkStatus)
		attendances.POST("/mark", middleware.RateLimitByUser(1, 3), handler.Mark)
		attendances.GET("/export", middleware.RateLimitByUser(0.2, 2), handler.Export)
	}

	r.GET("/dashboard", authMW, handler.Dashboard)
}
