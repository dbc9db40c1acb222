package group

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	grouperrors "pto-track/internal/group/errors"
	"pto-track/internal/resource"
)

//go:generate mockgen -source=group_service.go -destination=mock/group_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (GroupResponse, error)
	GetAll(ctx context.Context) ([]GroupResponse, error)
	GetByID(ctx context.Context, id int) (GroupResponse, error)
	Update(ctx context.Context, id int, req UpdateGroupRequest) (GroupResponse, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewService builds the group service. The redis client is used only to
// invalidate the cached resource listing when group membership data moves
// underneath it.
func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("group.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("group.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateGroupRequest) (GroupResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create group begin tx failed", zap.Error(err))
		return GroupResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	g := &Group{Name: req.Name}
	if err := qtx.Create(ctx, g); err != nil {
		s.logger.Error("create group persist failed", zap.Error(err))
		return GroupResponse{}, translateConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create group commit failed", zap.Error(err))
		return GroupResponse{}, err
	}

	s.logger.Info("create group success", zap.Int("group_id", g.ID), zap.String("name", g.Name))
	return mapToResponse(*g), nil
}

func (s *service) GetAll(ctx context.Context) ([]GroupResponse, error) {
	groups, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(groups), nil
}

func (s *service) GetByID(ctx context.Context, id int) (GroupResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupResponse{}, grouperrors.ErrGroupNotFound
		}
		return GroupResponse{}, err
	}
	return mapToResponse(*g), nil
}

func (s *service) Update(ctx context.Context, id int, req UpdateGroupRequest) (GroupResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update group begin tx failed", zap.Error(err))
		return GroupResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	g, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupResponse{}, grouperrors.ErrGroupNotFound
		}
		return GroupResponse{}, err
	}

	g.Name = req.Name
	if err := qtx.Update(ctx, g); err != nil {
		s.logger.Error("update group persist failed", zap.Int("group_id", id), zap.Error(err))
		return GroupResponse{}, translateConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update group commit failed", zap.Int("group_id", id), zap.Error(err))
		return GroupResponse{}, err
	}

	s.invalidateResourceListing(ctx)
	return mapToResponse(*g), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete group begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return grouperrors.ErrGroupNotFound
		}
		return err
	}

	// Referential-integrity guard: never cascade onto resources.
	count, err := qtx.CountResources(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Warn("delete group blocked by referencing resources",
			zap.Int("group_id", id),
			zap.Int64("resource_count", count),
		)
		return grouperrors.ErrGroupHasResources
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete group persist failed", zap.Int("group_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete group commit failed", zap.Int("group_id", id), zap.Error(err))
		return err
	}

	s.invalidateResourceListing(ctx)
	s.logger.Info("delete group success", zap.Int("group_id", id))
	return nil
}

func (s *service) invalidateResourceListing(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, resource.AllResourcesCacheKey).Err(); err != nil {
		s.logger.Warn("resource cache invalidation failed", zap.Error(err))
	}
}

func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return grouperrors.ErrDuplicateGroupName
	}
	return err
}

func mapToResponse(g Group) GroupResponse {
	return GroupResponse{ID: g.ID, Name: g.Name}
}

func mapToListResponse(groups []Group) []GroupResponse {
	resp := make([]GroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = mapToResponse(g)
	}
	return resp
}
