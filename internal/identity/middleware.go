package identity

import (
	"net/http"

	"pto-track/internal/domain"
	"pto-track/internal/middleware"
	"pto-track/internal/resource"
	"pto-track/internal/shared/apperror"
	"pto-track/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resourceKey is the gin context key for the synced resource row,
// claimsKey the one for the raw transport claims.
const (
	resourceKey = "identity.resource"
	claimsKey   = "identity.claims"
)

// ClaimsFrom returns the raw claims resolved for the current request.
func ClaimsFrom(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}

// ResourceFrom returns the resource row synced for the authenticated user.
func ResourceFrom(c *gin.Context) (*resource.Resource, bool) {
	v, ok := c.Get(resourceKey)
	if !ok {
		return nil, false
	}
	res, ok := v.(*resource.Resource)
	return res, ok
}

// Middleware resolves claims from the transport, syncs them to a resource
// row (created on first sight) and publishes the actor for downstream
// authorization checks.
func Middleware(provider ClaimsProvider, resources resource.Service, logger ...*zap.Logger) gin.HandlerFunc {
	l := zap.L().Named("identity.middleware")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.middleware")
	}

	return func(c *gin.Context) {
		claims, err := provider.Resolve(c)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			l.Warn("identity resolution failed",
				zap.String("path", c.FullPath()),
				zap.String("code", httpErr.Code),
			)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		role := claims.Role()
		res, err := resources.EnsureByEmployeeNumber(c.Request.Context(), resource.SyncProfile{
			EmployeeNumber: claims.EmployeeNumber,
			Name:           claims.Name,
			Email:          claims.Email,
			Role:           role,
		})
		if err != nil {
			l.Error("user sync failed",
				zap.String("employee_number", claims.EmployeeNumber),
				zap.Error(err),
			)
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError,
				"could not resolve the authenticated user", nil)
			c.Abort()
			return
		}

		// The resource-level approver flag grants decision rights even when
		// the claims only carry Employee, so the effective role is raised to
		// keep the route-level policy in agreement with the record rules.
		effective := role
		if res.IsApprover && effective < domain.RoleApprover {
			effective = domain.RoleApprover
		}

		c.Set(middleware.ActorKey, domain.Actor{
			ID:         res.ID,
			Role:       effective,
			IsApprover: res.IsApprover,
		})
		c.Set(resourceKey, res)
		c.Set(claimsKey, claims)
		c.Next()
	}
}
