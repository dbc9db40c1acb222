package event

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventerrors "pto-track/internal/event/errors"
)

//go:generate mockgen -source=event_service.go -destination=mock/event_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	GetByRange(ctx context.Context, start, end time.Time) ([]EventResponse, error)
	GetByID(ctx context.Context, id string) (EventResponse, error)
	Update(ctx context.Context, id string, req UpdateEventRequest) (EventResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("event.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("event.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEventRequest) (EventResponse, error) {
	if !req.End.After(req.Start) {
		s.logger.Warn("create event validation failed",
			zap.Int("resource_id", req.ResourceID),
			zap.Error(eventerrors.ErrInvalidDateRange),
		)
		return EventResponse{}, eventerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create event begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &SchedulerEvent{
		ID:         uuid.New(),
		Start:      req.Start,
		End:        req.End,
		Text:       req.Text,
		Color:      req.Color,
		ResourceID: req.ResourceID,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create event persist failed", zap.Error(err))
		return EventResponse{}, translateConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create event commit failed", zap.Error(err))
		return EventResponse{}, err
	}

	s.logger.Info("create event success",
		zap.String("event_id", e.ID.String()),
		zap.Int("resource_id", e.ResourceID),
	)
	return toEventResponse(e), nil
}

func (s *service) GetByRange(ctx context.Context, start, end time.Time) ([]EventResponse, error) {
	events, err := s.repo.FindByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	resp := make([]EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, toEventResponse(&events[i]))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EventResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EventResponse{}, eventerrors.ErrEventNotFound
		}
		return EventResponse{}, err
	}
	return toEventResponse(e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEventRequest) (EventResponse, error) {
	if !req.End.After(req.Start) {
		return EventResponse{}, eventerrors.ErrInvalidDateRange
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EventResponse{}, eventerrors.ErrEventNotFound
		}
		return EventResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update event begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e.Start = req.Start
	e.End = req.End
	e.Text = req.Text
	e.Color = req.Color
	e.ResourceID = req.ResourceID

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update event persist failed", zap.String("event_id", id), zap.Error(err))
		return EventResponse{}, translateConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update event commit failed", zap.String("event_id", id), zap.Error(err))
		return EventResponse{}, err
	}

	s.logger.Info("update event success", zap.String("event_id", id))
	return toEventResponse(e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return eventerrors.ErrEventNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete event begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete event persist failed", zap.String("event_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete event commit failed", zap.String("event_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete event success", zap.String("event_id", id))
	return nil
}

func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return eventerrors.ErrUnknownResource
	}
	return err
}
