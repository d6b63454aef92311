package settings

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Find(ctx context.Context) (*Settings, error)
	Create(ctx context.Context, s *Settings) error
	Save(ctx context.Context, s *Settings) error
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

// conn binds queries to the active transaction when one is set.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Find(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.conn(ctx).Order("created_at ASC").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *Settings) error {
	return r.conn(ctx).Create(s).Error
}

func (r *repository) Save(ctx context.Context, s *Settings) error {
	return r.conn(ctx).Save(s).Error
}
