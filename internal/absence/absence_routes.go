package absence

import (
	"pto-track/internal/authz"
	"pto-track/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer middleware.RouteEnforcer) {
	absences := r.Group("/absences")
	{
		absences.GET("", handler.List)
		absences.GET("/pending", middleware.Authorize(enforcer, authz.ResourceAbsences, authz.ActionDecide), handler.GetPending)
		absences.GET("/:id", handler.GetByID)
		absences.POST("", handler.Create)
		absences.PUT("/:id", handler.Update)
		absences.POST("/:id/approve", middleware.Authorize(enforcer, authz.ResourceAbsences, authz.ActionDecide), handler.Approve)
		absences.POST("/:id/reject", middleware.Authorize(enforcer, authz.ResourceAbsences, authz.ActionDecide), handler.Reject)
		absences.POST("/:id/cancel", handler.Cancel)
		absences.DELETE("/:id", handler.Delete)
	}
}
