package payroll

import (
	"context"
	"database/sql"

	"go-hrms/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, slip *SalarySlip) error
	Save(ctx context.Context, slip *SalarySlip) error
	FindByID(ctx context.Context, id string) (*SalarySlip, error)
	FindByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*SalarySlip, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]SalarySlip, error)
	FindByMonth(ctx context.Context, month string) ([]SalarySlip, error)
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

// conn binds queries to the active transaction when one is set.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, slip *SalarySlip) error {
	return r.conn(ctx).Create(slip).Error
}

func (r *repository) Save(ctx context.Context, slip *SalarySlip) error {
	return r.conn(ctx).Save(slip).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).
		Preload("Employee").
		Preload("Employee.User").
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) FindByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Where("month = ?", month).
		First(&slip).Error
	return &slip, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]SalarySlip, error) {
	var slips []SalarySlip
	err := r.conn(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("month DESC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) FindByMonth(ctx context.Context, month string) ([]SalarySlip, error) {
	var slips []SalarySlip
	err := r.conn(ctx).
		Preload("Employee").
		Preload("Employee.User").
		Where("month = ?", month).
		Order("created_at ASC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&SalarySlip{}, "id = ?", id).Error
}
