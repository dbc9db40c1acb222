package group

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=group_repo.go -destination=mock/group_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, g *Group) error
	FindAll(ctx context.Context) ([]Group, error)
	FindByID(ctx context.Context, id int) (*Group, error)
	Update(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id int) error
	CountResources(ctx context.Context, groupID int) (int64, error)
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

func (r *repository) Create(ctx context.Context, g *Group) error {
	return r.conn(ctx).Create(g).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Group, error) {
	var groups []Group
	err := r.conn(ctx).
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*Group, error) {
	var g Group
	err := r.conn(ctx).First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) Update(ctx context.Context, g *Group) error {
	return r.conn(ctx).Save(g).Error
}

func (r *repository) Delete(ctx context.Context, id int) error {
	return r.conn(ctx).Delete(&Group{}, "id = ?", id).Error
}

func (r *repository) CountResources(ctx context.Context, groupID int) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("resources").
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
