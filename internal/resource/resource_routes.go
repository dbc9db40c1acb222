package resource

import (
	"pto-track/internal/authz"
	"pto-track/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer middleware.RouteEnforcer) {
	resources := r.Group("/resources")
	{
		resources.GET("", handler.GetAll)
		resources.GET("/group/:groupId", handler.GetByGroup)
		resources.GET("/:id", handler.GetByID)
		resources.POST("", middleware.Authorize(enforcer, authz.ResourceResources, authz.ActionManage), handler.Create)
	}
}
