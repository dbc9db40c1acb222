package identity

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	currentUser := r.Group("/currentuser")
	{
		currentUser.GET("", handler.CurrentUser)
		currentUser.GET("/role/:roleName", handler.HasRole)
	}

	impersonation := r.Group("/impersonation")
	{
		impersonation.POST("", handler.Impersonate)
		impersonation.DELETE("", handler.StopImpersonation)
	}
}
