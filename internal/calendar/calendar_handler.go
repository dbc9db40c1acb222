package calendar

import (
	"net/http"

	"pto-track/internal/middleware"
	"pto-track/internal/shared/apperror"
	"pto-track/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Config(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return
	}
	response.Success(c, http.StatusOK, ConfigFor(actor), nil)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/calendar/config", handler.Config)
}
