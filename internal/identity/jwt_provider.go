package identity

import (
	"fmt"
	"net/http"
	"strings"

	"pto-track/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var errMissingToken = apperror.New(
	apperror.CodeUnauthorized,
	"missing or malformed bearer token",
	http.StatusUnauthorized,
)

var errInvalidToken = apperror.New(
	apperror.CodeUnauthorized,
	"invalid or expired token",
	http.StatusUnauthorized,
)

// JWTClaimsProvider validates HMAC-signed bearer tokens and maps their
// claims onto the identity attribute set.
type JWTClaimsProvider struct {
	secret []byte
}

func NewJWTClaimsProvider(secret string) *JWTClaimsProvider {
	return &JWTClaimsProvider{secret: []byte(secret)}
}

func (p *JWTClaimsProvider) MockMode() bool { return false }

func (p *JWTClaimsProvider) Resolve(c *gin.Context) (Claims, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return Claims{}, errMissingToken
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errInvalidToken
	}

	claims := Claims{
		EmployeeNumber: stringClaim(mapClaims, "employee_number"),
		Name:           stringClaim(mapClaims, "name"),
		Email:          stringClaim(mapClaims, "email"),
	}
	if claims.EmployeeNumber == "" {
		return Claims{}, errInvalidToken
	}

	if rawRoles, ok := mapClaims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if s, ok := r.(string); ok {
				claims.Roles = append(claims.Roles, s)
			}
		}
	}
	return claims, nil
}

func stringClaim(m jwt.MapClaims, key string) string {
	s, _ := m[key].(string)
	return s
}
