package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *LeaveRequest) error
	Save(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
	FindOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
	CountApprovedOn(ctx context.Context, day time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return r.conn(ctx).Create(req).Error
}

func (r *repository) Save(ctx context.Context, req *LeaveRequest) error {
	return r.conn(ctx).Save(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.conn(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

// FindByIDForUpdate locks the row so a portal decision and an email
// link decision cannot both win. Must run inside a transaction.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.conn(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.conn(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

// FindOverlapping returns pending or approved requests whose date span
// intersects [from, to].
func (r *repository) FindOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.conn(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("from_date <= ? AND to_date >= ?", to, from).
		Find(&reqs).Error
	return reqs, err
}

// CountApprovedOn reports how many employees are on approved leave on
// the given day. Used by the dashboard.
func (r *repository) CountApprovedOn(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("status = ?", StatusApproved).
		Where("from_date <= ? AND to_date >= ?", scope.EndOfDay(day), scope.StartOfDay(day)).
		Distinct("employee_id").
		Count(&count).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return count, err
}
