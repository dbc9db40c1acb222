package event

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=event_repo.go -destination=mock/event_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *SchedulerEvent) error
	FindByID(ctx context.Context, id string) (*SchedulerEvent, error)
	// FindByRange returns events overlapping [start, end): an event matches
	// when event.Start < end && event.End > start.
	FindByRange(ctx context.Context, start, end time.Time) ([]SchedulerEvent, error)
	Update(ctx context.Context, e *SchedulerEvent) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn binds the session to the caller's transaction when one is set, so
// writes issued through WithTx commit and roll back with it.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, e *SchedulerEvent) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SchedulerEvent, error) {
	var e SchedulerEvent
	err := r.conn(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByRange(ctx context.Context, start, end time.Time) ([]SchedulerEvent, error) {
	var events []SchedulerEvent
	err := r.conn(ctx).
		Where(`"start" < ? AND "end" > ?`, end, start).
		Order(`"start" ASC`).
		Find(&events).Error
	return events, err
}

func (r *repository) Update(ctx context.Context, e *SchedulerEvent) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&SchedulerEvent{}, "id = ?", id).Error
}
