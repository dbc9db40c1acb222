package middleware

import (
	"net/http"

	"pto-track/internal/domain"
	"pto-track/internal/shared/apperror"
	"pto-track/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActorKey is the gin context key under which the identity middleware
// stores the resolved domain.Actor.
const ActorKey = "actor"

// ActorFrom reads the resolved actor from the gin context.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// RouteEnforcer is the subset of the authz enforcer the middleware needs.
type RouteEnforcer interface {
	Enforce(role domain.Role, resource, action string) (bool, error)
}

// Authorize gates a route on a role-level resource/action policy. Denials
// are logged with the acting identity before the generic forbidden response
// goes out.
func Authorize(enforcer RouteEnforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(actor.Role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			zap.L().Warn("route authorization denied",
				zap.Int("actor_id", actor.ID),
				zap.String("role", actor.Role.String()),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.String("path", c.FullPath()),
			)
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
