package absence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	absenceerrors "pto-track/internal/absence/errors"
	"pto-track/internal/domain"
)

//go:generate mockgen -source=absence_service.go -destination=mock/absence_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAbsenceRequest) (AbsenceResponse, error)
	GetByRange(ctx context.Context, start, end time.Time, statuses []string) ([]AbsenceResponse, error)
	GetByEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]AbsenceResponse, error)
	GetVisibleToEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]AbsenceResponse, error)
	GetPending(ctx context.Context) ([]AbsenceResponse, error)
	GetByID(ctx context.Context, id string) (AbsenceResponse, error)
	Update(ctx context.Context, id string, req UpdateAbsenceRequest) (AbsenceResponse, error)
	Approve(ctx context.Context, id string, approverID int, comments string) (AbsenceResponse, error)
	Reject(ctx context.Context, id string, approverID int, reason string) (AbsenceResponse, error)
	Cancel(ctx context.Context, id string, employeeID int) (AbsenceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("absence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateAbsenceRequest) (AbsenceResponse, error) {
	s.logger.Debug("create absence requested",
		zap.Int("employee_id", req.EmployeeID),
		zap.Time("start", req.Start),
		zap.Time("end", req.End),
	)

	if !req.End.After(req.Start) {
		s.logger.Warn("create absence validation failed",
			zap.Int("employee_id", req.EmployeeID),
			zap.Error(absenceerrors.ErrInvalidDateRange),
		)
		return AbsenceResponse{}, absenceerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create absence begin tx failed", zap.Error(err))
		return AbsenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a := &AbsenceRequest{
		ID:            uuid.New(),
		Start:         req.Start,
		End:           req.End,
		Reason:        req.Reason,
		EmployeeID:    req.EmployeeID,
		Status:        domain.StatusPending,
		RequestedDate: time.Now().UTC(),
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create absence persist failed", zap.Error(err))
		return AbsenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create absence commit failed", zap.Error(err))
		return AbsenceResponse{}, err
	}

	s.logger.Info("create absence success",
		zap.String("absence_id", a.ID.String()),
		zap.Int("employee_id", req.EmployeeID),
	)

	// Reload so the employee display name is resolved on the response.
	created, err := s.repo.FindByID(ctx, a.ID.String())
	if err != nil {
		return mapToResponse(*a), nil
	}
	return mapToResponse(*created), nil
}

func (s *service) GetByRange(ctx context.Context, start, end time.Time, statuses []string) ([]AbsenceResponse, error) {
	absences, err := s.repo.FindByRange(ctx, start, end, statuses)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(absences), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]AbsenceResponse, error) {
	absences, err := s.repo.FindByEmployee(ctx, employeeID, start, end, statuses)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(absences), nil
}

func (s *service) GetVisibleToEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]AbsenceResponse, error) {
	absences, err := s.repo.FindVisibleToEmployee(ctx, employeeID, start, end, statuses)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(absences), nil
}

func (s *service) GetPending(ctx context.Context) ([]AbsenceResponse, error) {
	absences, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(absences), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AbsenceResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAbsenceRequest) (AbsenceResponse, error) {
	s.logger.Debug("update absence requested", zap.String("absence_id", id))

	if !req.End.After(req.Start) {
		return AbsenceResponse{}, absenceerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update absence begin tx failed", zap.Error(err))
		return AbsenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}

	if a.Status != domain.StatusPending {
		s.logger.Warn("update absence rejected for non-pending request",
			zap.String("absence_id", id),
			zap.String("status", a.Status),
		)
		return AbsenceResponse{}, absenceerrors.ErrNotPending
	}

	a.Start = req.Start
	a.End = req.End
	a.Reason = req.Reason

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update absence persist failed", zap.String("absence_id", id), zap.Error(err))
		return AbsenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update absence commit failed", zap.String("absence_id", id), zap.Error(err))
		return AbsenceResponse{}, err
	}

	s.logger.Info("update absence success", zap.String("absence_id", id))
	return mapToResponse(*a), nil
}

func (s *service) Approve(ctx context.Context, id string, approverID int, comments string) (AbsenceResponse, error) {
	return s.decide(ctx, id, approverID, domain.StatusApproved, comments)
}

func (s *service) Reject(ctx context.Context, id string, approverID int, reason string) (AbsenceResponse, error) {
	if reason == "" {
		return AbsenceResponse{}, absenceerrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, id, approverID, domain.StatusRejected, reason)
}

// decide applies a terminal approve/reject decision to a pending request.
func (s *service) decide(ctx context.Context, id string, approverID int, targetStatus, comments string) (AbsenceResponse, error) {
	s.logger.Debug("absence decision requested",
		zap.String("absence_id", id),
		zap.Int("approver_id", approverID),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("absence decision begin tx failed", zap.Error(err))
		return AbsenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}

	if a.Status != domain.StatusPending {
		s.logger.Warn("absence decision rejected for non-pending request",
			zap.String("absence_id", id),
			zap.String("status", a.Status),
			zap.String("target_status", targetStatus),
		)
		return AbsenceResponse{}, absenceerrors.ErrAlreadyProcessed
	}

	now := time.Now().UTC()
	a.Status = targetStatus
	a.ApproverID = &approverID
	a.ApprovedDate = &now
	if comments != "" {
		a.ApprovalComments = &comments
	} else {
		a.ApprovalComments = nil
	}

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("absence decision persist failed",
			zap.String("absence_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return AbsenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("absence decision commit failed", zap.String("absence_id", id), zap.Error(err))
		return AbsenceResponse{}, err
	}

	s.logger.Info("absence decision success",
		zap.String("absence_id", id),
		zap.String("status", targetStatus),
		zap.Int("approver_id", approverID),
	)
	return mapToResponse(*a), nil
}

func (s *service) Cancel(ctx context.Context, id string, employeeID int) (AbsenceResponse, error) {
	s.logger.Debug("cancel absence requested",
		zap.String("absence_id", id),
		zap.Int("employee_id", employeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel absence begin tx failed", zap.Error(err))
		return AbsenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}

	if a.EmployeeID != employeeID {
		s.logger.Warn("cancel absence denied for non-owner",
			zap.String("absence_id", id),
			zap.Int("owner_id", a.EmployeeID),
			zap.Int("employee_id", employeeID),
		)
		return AbsenceResponse{}, absenceerrors.ErrNotRequestOwner
	}

	if a.Status == domain.StatusCancelled {
		return AbsenceResponse{}, absenceerrors.ErrAlreadyCancelled
	}

	a.Status = domain.StatusCancelled

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("cancel absence persist failed", zap.String("absence_id", id), zap.Error(err))
		return AbsenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel absence commit failed", zap.String("absence_id", id), zap.Error(err))
		return AbsenceResponse{}, err
	}

	s.logger.Info("cancel absence success", zap.String("absence_id", id))
	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return absenceerrors.ErrAbsenceNotFound
		}
		return err
	}

	if a.Status != domain.StatusPending && a.Status != domain.StatusCancelled {
		return absenceerrors.ErrDeleteNotAllowed
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete absence success", zap.String("absence_id", id))
	return nil
}

func mapToResponse(a AbsenceRequest) AbsenceResponse {
	resp := AbsenceResponse{
		ID:               a.ID.String(),
		Start:            a.Start,
		End:              a.End,
		Reason:           a.Reason,
		EmployeeID:       a.EmployeeID,
		Status:           a.Status,
		RequestedDate:    a.RequestedDate,
		ApproverID:       a.ApproverID,
		ApprovedDate:     a.ApprovedDate,
		ApprovalComments: a.ApprovalComments,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.Name
	}
	if a.Approver != nil {
		name := a.Approver.Name
		resp.ApproverName = &name
	}
	return resp
}

func mapToListResponse(absences []AbsenceRequest) []AbsenceResponse {
	resp := make([]AbsenceResponse, len(absences))
	for i, a := range absences {
		resp[i] = mapToResponse(a)
	}
	return resp
}
