package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Directory

	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
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

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.conn(ctx).Create(emp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.conn(ctx).
		Preload("User").
		Preload("Department").
		Order("created_at ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.conn(ctx).
		Preload("User").
		Preload("Department").
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var emp Employee
	err := r.conn(ctx).
		Preload("User").
		Preload("Department").
		First(&emp, "user_id = ?", userID).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.conn(ctx).Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) ListEntries(ctx context.Context, filter DirectoryFilter) ([]DirectoryEntry, error) {
	q := r.conn(ctx).
		Preload("User").
		Preload("Department")

	if filter.EmployeeID != "" {
		q = q.Where("id = ?", filter.EmployeeID)
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}

	var emps []Employee
	if err := q.Find(&emps).Error; err != nil {
		return nil, err
	}

	entries := make([]DirectoryEntry, len(emps))
	for i, emp := range emps {
		entries[i] = mapToDirectoryEntry(emp)
	}
	return entries, nil
}

func (r *repository) FindEntryByUserID(ctx context.Context, userID string) (*DirectoryEntry, error) {
	emp, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	entry := mapToDirectoryEntry(*emp)
	return &entry, nil
}

func (r *repository) FindIDByUserID(ctx context.Context, userID string) (string, error) {
	var emp Employee
	err := r.conn(ctx).
		Select("id").
		First(&emp, "user_id = ?", userID).Error
	if err != nil {
		return "", err
	}
	return emp.ID.String(), nil
}
