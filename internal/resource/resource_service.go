package resource

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"pto-track/internal/domain"
	resourceerrors "pto-track/internal/resource/errors"
)

// Cache keys for the resource listing. Resources are master data and change
// rarely, so the listing is served read-through from Redis.
const (
	AllResourcesCacheKey = "resources:all"
	cacheTTL             = 30 * time.Minute
)

// SyncProfile carries the identity attributes used to provision a resource
// row for a first-time authenticated user.
type SyncProfile struct {
	EmployeeNumber string
	Name           string
	Email          string
	Role           domain.Role
}

//go:generate mockgen -source=resource_service.go -destination=mock/resource_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]ResourceResponse, error)
	GetByGroup(ctx context.Context, groupID int) ([]ResourceResponse, error)
	GetByID(ctx context.Context, id int) (ResourceResponse, error)
	Create(ctx context.Context, req CreateResourceRequest) (ResourceResponse, error)
	// EnsureByEmployeeNumber resolves the resource row for an authenticated
	// identity, creating it on first sight.
	EnsureByEmployeeNumber(ctx context.Context, profile SyncProfile) (*Resource, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("resource.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("resource.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]ResourceResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, AllResourcesCacheKey).Result()
		if err == nil {
			var resp []ResourceResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(AllResourcesCacheKey, func() (interface{}, error) {
		resources, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(resources)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, AllResourcesCacheKey, payload, cacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ResourceResponse), nil
}

func (s *service) GetByGroup(ctx context.Context, groupID int) ([]ResourceResponse, error) {
	resources, err := s.repo.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(resources), nil
}

func (s *service) GetByID(ctx context.Context, id int) (ResourceResponse, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResourceResponse{}, resourceerrors.ErrResourceNotFound
		}
		return ResourceResponse{}, err
	}
	return mapToResponse(*res), nil
}

func (s *service) Create(ctx context.Context, req CreateResourceRequest) (ResourceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create resource begin tx failed", zap.Error(err))
		return ResourceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role := req.Role
	if role == "" {
		role = domain.RoleEmployee.String()
	}

	res := &Resource{
		Name:           req.Name,
		Email:          req.Email,
		EmployeeNumber: req.EmployeeNumber,
		Role:           role,
		IsApprover:     req.IsApprover,
		IsActive:       true,
		Department:     req.Department,
		GroupID:        req.GroupID,
	}

	if err := qtx.Create(ctx, res); err != nil {
		s.logger.Error("create resource persist failed", zap.Error(err))
		return ResourceResponse{}, translateConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create resource commit failed", zap.Error(err))
		return ResourceResponse{}, err
	}

	s.invalidateListing(ctx)
	s.logger.Info("create resource success",
		zap.Int("resource_id", res.ID),
		zap.String("name", res.Name),
	)
	return mapToResponse(*res), nil
}

func (s *service) EnsureByEmployeeNumber(ctx context.Context, profile SyncProfile) (*Resource, error) {
	res, err := s.repo.FindByEmployeeNumber(ctx, profile.EmployeeNumber)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empNo := profile.EmployeeNumber
	var email *string
	if profile.Email != "" {
		email = &profile.Email
	}
	created := &Resource{
		Name:           profile.Name,
		Email:          email,
		EmployeeNumber: &empNo,
		Role:           profile.Role.String(),
		IsApprover:     profile.Role.CanDecide(),
		IsActive:       true,
	}

	if err := qtx.Create(ctx, created); err != nil {
		return nil, translateConstraintError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.logger.Info("provisioned resource for first-time user",
		zap.Int("resource_id", created.ID),
		zap.String("employee_number", profile.EmployeeNumber),
	)
	return created, nil
}

func (s *service) invalidateListing(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, AllResourcesCacheKey).Err(); err != nil {
		s.logger.Warn("resource cache invalidation failed", zap.Error(err))
	}
}

// translateConstraintError maps Postgres constraint violations onto the
// application error taxonomy.
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return resourceerrors.ErrDuplicateEmployeeNumber
		case "23503":
			return resourceerrors.ErrUnknownGroup
		}
	}
	return err
}

func mapToResponse(r Resource) ResourceResponse {
	return ResourceResponse{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		EmployeeNumber: r.EmployeeNumber,
		Role:           r.Role,
		IsApprover:     r.IsApprover,
		IsActive:       r.IsActive,
		Department:     r.Department,
		GroupID:        r.GroupID,
	}
}

func mapToListResponse(resources []Resource) []ResourceResponse {
	resp := make([]ResourceResponse, len(resources))
	for i, r := range resources {
		resp[i] = mapToResponse(r)
	}
	return resp
}
