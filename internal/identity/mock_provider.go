package identity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ImpersonationCookie carries the development identity between requests.
const ImpersonationCookie = "ImpersonationData"

// Default development identity used when no impersonation cookie is set.
var defaultClaims = Claims{
	EmployeeNumber: "ADMIN001",
	Name:           "Admin User",
	Email:          "admin@example.com",
	Roles:          []string{"Admin"},
}

// MockClaimsProvider serves identities from the impersonation cookie,
// falling back to a built-in admin. Development use only.
type MockClaimsProvider struct{}

func NewMockClaimsProvider() *MockClaimsProvider {
	return &MockClaimsProvider{}
}

func (p *MockClaimsProvider) MockMode() bool { return true }

func (p *MockClaimsProvider) Resolve(c *gin.Context) (Claims, error) {
	raw, err := c.Cookie(ImpersonationCookie)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return defaultClaims, nil
		}
		return Claims{}, err
	}

	var claims Claims
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		// A malformed cookie falls back to the default identity rather
		// than locking the developer out.
		return defaultClaims, nil
	}
	if claims.EmployeeNumber == "" {
		return defaultClaims, nil
	}
	return claims, nil
}
