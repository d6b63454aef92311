package dashboard

import (
	"context"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountActiveEmployees(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountAttendanceOn(ctx context.Context, day time.Time) (int64, error)
	CountOnLeave(ctx context.Context, day time.Time) (int64, error)
	CountPendingLeaves(ctx context.Context) (int64, error)
	RecentLeaves(ctx context.Context, limit int) ([]leave.LeaveRequest, error)
	RecentEventsOn(ctx context.Context, day time.Time, limit int) ([]attendance.BiometricEvent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountActiveEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("status = ?", employee.StatusActive).
		Count(&count).Error
	return count, err
}

func (r *repository) CountDepartments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&department.Department{}).
		Count(&count).Error
	return count, err
}

// CountAttendanceOn counts employees with any attendance record on the
// given day.
func (r *repository) CountAttendanceOn(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&attendance.AttendanceRecord{}).
		Scopes(scope.OnDay("date", day)).
		Distinct("employee_id").
		Count(&count).Error
	return count, err
}

// CountOnLeave counts employees with an approved leave spanning the
// given day.
func (r *repository) CountOnLeave(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leave.LeaveRequest{}).
		Where("status = ?", leave.StatusApproved).
		Where("from_date <= ? AND to_date >= ?", scope.EndOfDay(day), scope.StartOfDay(day)).
		Distinct("employee_id").
		Count(&count).Error
	return count, err
}

func (r *repository) CountPendingLeaves(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leave.LeaveRequest{}).
		Where("status = ?", leave.StatusPending).
		Count(&count).Error
	return count, err
}

func (r *repository) RecentLeaves(ctx context.Context, limit int) ([]leave.LeaveRequest, error) {
	var reqs []leave.LeaveRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) RecentEventsOn(ctx context.Context, day time.Time, limit int) ([]attendance.BiometricEvent, error) {
	var events []attendance.BiometricEvent
	err := r.db.WithContext(ctx).
		Scopes(scope.OnDay("timestamp", day)).
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
