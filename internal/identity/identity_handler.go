package identity

import (
	"encoding/json"
	"net/http"
	"strings"

	"pto-track/internal/shared/apperror"
	"pto-track/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CurrentUserResponse struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Email          *string  `json:"email"`
	EmployeeNumber *string  `json:"employeeNumber"`
	Role           string   `json:"role"`
	IsApprover     bool     `json:"isApprover"`
	IsActive       bool     `json:"isActive"`
	Department     *string  `json:"department"`
	Roles          []string `json:"roles"`
	IsMockMode     bool     `json:"isMockMode"`
}

type ImpersonationRequest struct {
	EmployeeNumber string   `json:"employeeNumber" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Roles          []string `json:"roles" binding:"required,min=1"`
}

type Handler struct {
	provider ClaimsProvider
	logger   *zap.Logger
}

func NewHandler(provider ClaimsProvider, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("identity.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.handler")
	}
	return &Handler{provider: provider, logger: l}
}

func (h *Handler) CurrentUser(c *gin.Context) {
	res, ok := ResourceFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return
	}
	claims, _ := ClaimsFrom(c)

	response.Success(c, http.StatusOK, CurrentUserResponse{
		ID:             res.ID,
		Name:           res.Name,
		Email:          res.Email,
		EmployeeNumber: res.EmployeeNumber,
		Role:           claims.Role().String(),
		IsApprover:     res.IsApprover,
		IsActive:       res.IsActive,
		Department:     res.Department,
		Roles:          claims.Roles,
		IsMockMode:     h.provider.MockMode(),
	}, nil)
}

// HasRole answers whether the authenticated user carries the named role
// claim, case-insensitive.
func (h *Handler) HasRole(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return
	}

	wanted := c.Param("roleName")
	has := false
	for _, r := range claims.Roles {
		if strings.EqualFold(r, wanted) {
			has = true
			break
		}
	}
	response.Success(c, http.StatusOK, has, nil)
}

// Impersonate stores a development identity in the impersonation cookie.
// Only available while the mock claims provider is active.
func (h *Handler) Impersonate(c *gin.Context) {
	if !h.provider.MockMode() {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Impersonation is only available in mock authentication mode", nil)
		return
	}

	var req ImpersonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http impersonation validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	payload, err := json.Marshal(Claims{
		EmployeeNumber: req.EmployeeNumber,
		Name:           req.Name,
		Email:          req.Email,
		Roles:          req.Roles,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "could not encode identity", nil)
		return
	}

	// Eight hour development session.
	c.SetCookie(ImpersonationCookie, string(payload), 8*60*60, "/", "", false, true)
	h.logger.Info("impersonation started",
		zap.String("employee_number", req.EmployeeNumber),
		zap.Strings("roles", req.Roles),
	)
	c.Status(http.StatusNoContent)
}

func (h *Handler) StopImpersonation(c *gin.Context) {
	if !h.provider.MockMode() {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Impersonation is only available in mock authentication mode", nil)
		return
	}

	c.SetCookie(ImpersonationCookie, "", -1, "/", "", false, true)
	h.logger.Info("impersonation cleared")
	c.Status(http.StatusNoContent)
}
