package absence

import (
	"net/http"
	"strconv"
	"time"

	"pto-track/internal/authz"
	"pto-track/internal/domain"
	"pto-track/internal/middleware"
	"pto-track/internal/shared/apperror"
	"pto-track/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("absence.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("absence request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// forbid logs the denied action with actor and target, then answers with the
// generic forbidden response so callers cannot probe for record existence.
func (h *Handler) forbid(c *gin.Context, actor domain.Actor, targetID string) {
	h.logger.Warn("absence authorization denied",
		zap.Int("actor_id", actor.ID),
		zap.String("role", actor.Role.String()),
		zap.String("target_id", targetID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
		"You do not have permission to access this resource", nil)
}

func (h *Handler) actor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
	}
	return actor, ok
}

// List serves GET /api/absences. Either an employeeId or a start/end range
// is required. A plain employee listing without an explicit employeeId sees
// their own requests plus everyone's approved ones.
func (h *Handler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var q ListAbsencesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid query parameters", err.Error())
		return
	}

	statuses := domain.ParseStatuses(q.Status)
	ctx := c.Request.Context()

	if q.EmployeeID != nil {
		// Default window of three months on either side, matching the
		// calendar widget's fallback fetch.
		now := time.Now().UTC()
		start := now.AddDate(0, -3, 0)
		end := now.AddDate(0, 3, 0)
		if q.Start != nil {
			start = *q.Start
		}
		if q.End != nil {
			end = *q.End
		}

		resp, err := h.service.GetByEmployee(ctx, *q.EmployeeID, start, end, statuses)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	if q.Start != nil && q.End != nil {
		var (
			resp []AbsenceResponse
			err  error
		)
		if actor.Role == domain.RoleEmployee && !actor.IsApprover {
			resp, err = h.service.GetVisibleToEmployee(ctx, actor.ID, *q.Start, *q.End, statuses)
		} else {
			resp, err = h.service.GetByRange(ctx, *q.Start, *q.End, statuses)
		}
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
		"Either provide start and end dates, or provide employeeId", nil)
}

func (h *Handler) GetPending(c *gin.Context) {
	resp, err := h.service.GetPending(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create absence validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if !authz.CanCreateFor(actor, req.EmployeeID) {
		h.forbid(c, actor, strconv.Itoa(req.EmployeeID))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var req UpdateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update absence validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	// Ownership gate before the lifecycle check: non-owners are forbidden
	// at the API layer without reaching the service-level update.
	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !actor.IsAdmin() && existing.EmployeeID != actor.ID {
		h.forbid(c, actor, id)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var req ApproveAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http approve absence validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if req.ApproverID != actor.ID {
		h.logger.Warn("approver id mismatch",
			zap.Int("actor_id", actor.ID),
			zap.Int("provided_approver_id", req.ApproverID),
			zap.String("target_id", id),
		)
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Approver ID must match the authenticated user", nil)
		return
	}

	if _, err := h.service.Approve(c.Request.Context(), id, req.ApproverID, req.Comments); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Reject(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var req RejectAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http reject absence validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if req.ApproverID != actor.ID {
		h.logger.Warn("approver id mismatch",
			zap.Int("actor_id", actor.ID),
			zap.Int("provided_approver_id", req.ApproverID),
			zap.String("target_id", id),
		)
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Approver ID must match the authenticated user", nil)
		return
	}

	if _, err := h.service.Reject(c.Request.Context(), id, req.ApproverID, req.Reason); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := c.Param("id")

	employeeID, err := strconv.Atoi(c.Query("employeeId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "employeeId query parameter is required", nil)
		return
	}

	if actor.ID != employeeID {
		h.forbid(c, actor, id)
		return
	}

	if _, err := h.service.Cancel(c.Request.Context(), id, employeeID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := c.Param("id")

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !actor.IsAdmin() && existing.EmployeeID != actor.ID {
		h.forbid(c, actor, id)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
