package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventLogFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateEvent(ctx context.Context, ev *BiometricEvent) error
	LastEventByUser(ctx context.Context, userID string) (*BiometricEvent, error)
	FindEventsByUserOn(ctx context.Context, userID string, day time.Time) ([]BiometricEvent, error)
	FindEventsByUsersOn(ctx context.Context, userIDs []string, day time.Time) ([]BiometricEvent, error)
	ListEvents(ctx context.Context, filter EventLogFilter) ([]BiometricEvent, int64, error)

	CreateRecord(ctx context.Context, rec *AttendanceRecord) error
	SaveRecord(ctx context.Context, rec *AttendanceRecord) error
	FindRecordOn(ctx context.Context, employeeID string, day time.Time) (*AttendanceRecord, error)
	FindRecordOnForUpdate(ctx context.Context, employeeID string, day time.Time) (*AttendanceRecord, error)
	FindRecordsByEmployeesOn(ctx context.Context, employeeIDs []string, day time.Time) ([]AttendanceRecord, error)
	FindRecordsByEmployeesBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]AttendanceRecord, error)
	FindRecordsByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]AttendanceRecord, error)
	FindRecentRecords(ctx context.Context, limit int) ([]AttendanceRecord, error)
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

func (r *repository) CreateEvent(ctx context.Context, ev *BiometricEvent) error {
	return r.conn(ctx).Create(ev).Error
}

// LastEventByUser returns the user's single most recent event across
// all days, or nil when the user has never tapped.
func (r *repository) LastEventByUser(ctx context.Context, userID string) (*BiometricEvent, error) {
	var ev BiometricEvent
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *repository) FindEventsByUserOn(ctx context.Context, userID string, day time.Time) ([]BiometricEvent, error) {
	var events []BiometricEvent
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Scopes(scope.OnDay("timestamp", day)).
		Order("timestamp ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) FindEventsByUsersOn(ctx context.Context, userIDs []string, day time.Time) ([]BiometricEvent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var events []BiometricEvent
	err := r.conn(ctx).
		Where("user_id IN ?", userIDs).
		Scopes(scope.OnDay("timestamp", day)).
		Order("timestamp ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) ListEvents(ctx context.Context, filter EventLogFilter) ([]BiometricEvent, int64, error) {
	q := r.conn(ctx).Model(&BiometricEvent{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.From != nil && filter.To != nil {
		q = q.Scopes(scope.Between("timestamp", *filter.From, *filter.To))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var events []BiometricEvent
	err := q.Order("timestamp DESC").Find(&events).Error
	return events, total, err
}

func (r *repository) CreateRecord(ctx context.Context, rec *AttendanceRecord) error {
	return r.conn(ctx).Create(rec).Error
}

func (r *repository) SaveRecord(ctx context.Context, rec *AttendanceRecord) error {
	return r.conn(ctx).Save(rec).Error
}

func (r *repository) FindRecordOn(ctx context.Context, employeeID string, day time.Time) (*AttendanceRecord, error) {
	return r.findRecordOn(ctx, employeeID, day, false)
}

// FindRecordOnForUpdate takes a row lock on the employee-day record so
// concurrent clock mutations serialize. Must run inside a transaction.
func (r *repository) FindRecordOnForUpdate(ctx context.Context, employeeID string, day time.Time) (*AttendanceRecord, error) {
	return r.findRecordOn(ctx, employeeID, day, true)
}

func (r *repository) findRecordOn(ctx context.Context, employeeID string, day time.Time, lock bool) (*AttendanceRecord, error) {
	q := r.conn(ctx).
		Scopes(scope.ByEmployee(employeeID), scope.OnDay("date", day))
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rec AttendanceRecord
	err := q.First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindRecordsByEmployeesOn(ctx context.Context, employeeIDs []string, day time.Time) ([]AttendanceRecord, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var recs []AttendanceRecord
	err := r.conn(ctx).
		Where("employee_id IN ?", employeeIDs).
		Scopes(scope.OnDay("date", day)).
		Order("date ASC").
		Find(&recs).Error
	return recs, err
}

// FindRecordsByEmployeesBetween returns records in the inclusive day
// range; a nil or empty employeeIDs means all employees.
func (r *repository) FindRecordsByEmployeesBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]AttendanceRecord, error) {
	q := r.conn(ctx).Scopes(scope.Between("date", from, to))
	if len(employeeIDs) > 0 {
		q = q.Where("employee_id IN ?", employeeIDs)
	}
	var recs []AttendanceRecord
	err := q.Order("date ASC").Find(&recs).Error
	return recs, err
}

func (r *repository) FindRecordsByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]AttendanceRecord, error) {
	q := r.conn(ctx).Scopes(scope.ByEmployee(employeeID))
	if from != nil && to != nil {
		q = q.Scopes(scope.Between("date", *from, *to))
	}
	var recs []AttendanceRecord
	err := q.Order("date DESC").Find(&recs).Error
	return recs, err
}

func (r *repository) FindRecentRecords(ctx context.Context, limit int) ([]AttendanceRecord, error) {
	var recs []AttendanceRecord
	err := r.conn(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
