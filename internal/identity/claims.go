package identity

import (
	"pto-track/internal/domain"

	"github.com/gin-gonic/gin"
)

// Claims is the identity attribute set extracted from the transport,
// before it is resolved against the resource table.
type Claims struct {
	EmployeeNumber string   `json:"employeeNumber"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Roles          []string `json:"roles"`
}

// Role reduces the raw role claims to the single effective role.
func (c Claims) Role() domain.Role {
	return domain.RoleFromClaims(c.Roles)
}

// ClaimsProvider extracts identity claims from an incoming request.
//
//go:generate mockgen -source=claims.go -destination=mock/claims_provider_mock.go -package=mock
type ClaimsProvider interface {
	Resolve(c *gin.Context) (Claims, error)
	// MockMode reports whether the provider serves development identities
	// that can be switched through the impersonation endpoint.
	MockMode() bool
}
