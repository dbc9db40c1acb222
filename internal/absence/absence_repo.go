package absence

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"pto-track/internal/domain"
)

//go:generate mockgen -source=absence_repo.go -destination=mock/absence_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *AbsenceRequest) error
	FindByID(ctx context.Context, id string) (*AbsenceRequest, error)
	// FindByRange returns requests overlapping [start, end): a request
	// matches when request.Start < end && request.End > start.
	FindByRange(ctx context.Context, start, end time.Time, statuses []string) ([]AbsenceRequest, error)
	FindByEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]AbsenceRequest, error)
	// FindVisibleToEmployee returns the employee's own requests plus all
	// approved requests of other employees, within the range.
	FindVisibleToEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]AbsenceRequest, error)
	FindPending(ctx context.Context) ([]AbsenceRequest, error)
	Update(ctx context.Context, a *AbsenceRequest) error
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

func (r *repository) withPreloads(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Employee").
		Preload("Approver")
}

func (r *repository) Create(ctx context.Context, a *AbsenceRequest) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AbsenceRequest, error) {
	var a AbsenceRequest
	err := r.withPreloads(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByRange(ctx context.Context, start, end time.Time, statuses []string) ([]AbsenceRequest, error) {
	var absences []AbsenceRequest
	q := r.withPreloads(ctx).
		Where(`"start" < ? AND "end" > ?`, end, start)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Find(&absences).Error
	return absences, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]AbsenceRequest, error) {
	var absences []AbsenceRequest
	q := r.withPreloads(ctx).
		Where("employee_id = ?", employeeID).
		Where(`"start" < ? AND "end" > ?`, end, start)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Find(&absences).Error
	return absences, err
}

func (r *repository) FindVisibleToEmployee(ctx context.Context, employeeID int, start, end time.Time, statuses []string) ([]AbsenceRequest, error) {
	var absences []AbsenceRequest
	q := r.withPreloads(ctx).
		Where(`"start" < ? AND "end" > ?`, end, start).
		Where("employee_id = ? OR status = ?", employeeID, domain.StatusApproved)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Find(&absences).Error
	return absences, err
}

func (r *repository) FindPending(ctx context.Context) ([]AbsenceRequest, error) {
	var absences []AbsenceRequest
	err := r.withPreloads(ctx).
		Where("status = ?", domain.StatusPending).
		Order("requested_date ASC").
		Find(&absences).Error
	return absences, err
}

func (r *repository) Update(ctx context.Context, a *AbsenceRequest) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&AbsenceRequest{}, "id = ?", id).Error
}
