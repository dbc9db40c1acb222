package event

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	events := r.Group("/events")
	{
		events.GET("", handler.List)
		events.POST("", handler.Create)
		events.PUT("/:id", handler.Update)
		events.DELETE("/:id", handler.Delete)
	}
}
