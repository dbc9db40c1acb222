package resource

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=resource_repo.go -destination=mock/resource_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Resource) error
	FindAll(ctx context.Context) ([]Resource, error)
	FindByGroup(ctx context.Context, groupID int) ([]Resource, error)
	FindByID(ctx context.Context, id int) (*Resource, error)
	FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*Resource, error)
	Update(ctx context.Context, r *Resource) error
	CountByGroup(ctx context.Context, groupID int) (int64, error)
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

func (r *repository) Create(ctx context.Context, res *Resource) error {
	return r.conn(ctx).Create(res).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Resource, error) {
	var resources []Resource
	err := r.conn(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&resources).Error
	return resources, err
}

func (r *repository) FindByGroup(ctx context.Context, groupID int) ([]Resource, error) {
	var resources []Resource
	err := r.conn(ctx).
		Where("group_id = ?", groupID).
		Order("name ASC").
		Find(&resources).Error
	return resources, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*Resource, error) {
	var res Resource
	err := r.conn(ctx).First(&res, "id = ?", id).Error
	return &res, err
}

func (r *repository) FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*Resource, error) {
	var res Resource
	err := r.conn(ctx).First(&res, "employee_number = ?", employeeNumber).Error
	return &res, err
}

func (r *repository) Update(ctx context.Context, res *Resource) error {
	return r.conn(ctx).Save(res).Error
}

func (r *repository) CountByGroup(ctx context.Context, groupID int) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Resource{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
