package group

import (
	"pto-track/internal/authz"
	"pto-track/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the group endpoints. Every group route is
// administrator-only.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer middleware.RouteEnforcer) {
	groups := r.Group("/groups")
	groups.Use(middleware.Authorize(enforcer, authz.ResourceGroups, authz.ActionManage))
	{
		groups.GET("", handler.GetAll)
		groups.GET("/:groupId", handler.GetByID)
		groups.POST("", handler.Create)
		groups.PUT("/:groupId", handler.Update)
		groups.DELETE("/:groupId", handler.Delete)
	}
}
