package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/leave"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	activeEmployees int64
	departments     int64
	attendanceOn    int64
	onLeave         int64
	pendingLeaves   int64
	recentLeaves    []leave.LeaveRequest
	recentEvents    []attendance.BiometricEvent

	statsQueries int
}

func (f *fakeRepo) CountActiveEmployees(ctx context.Context) (int64, error) {
	f.statsQueries++
	return f.activeEmployees, nil
}
func (f *fakeRepo) CountDepartments(ctx context.Context) (int64, error) {
	return f.departments, nil
}
func (f *fakeRepo) CountAttendanceOn(ctx context.Context, day time.Time) (int64, error) {
	return f.attendanceOn, nil
}
func (f *fakeRepo) CountOnLeave(ctx context.Context, day time.Time) (int64, error) {
	return f.onLeave, nil
}
func (f *fakeRepo) CountPendingLeaves(ctx context.Context) (int64, error) {
	return f.pendingLeaves, nil
}
func (f *fakeRepo) RecentLeaves(ctx context.Context, limit int) ([]leave.LeaveRequest, error) {
	return f.recentLeaves, nil
}
func (f *fakeRepo) RecentEventsOn(ctx context.Context, day time.Time, limit int) ([]attendance.BiometricEvent, error) {
	return f.recentEvents, nil
}

func TestService_Stats_ComputesRateWithoutCache(t *testing.T) {
	repo := &fakeRepo{
		activeEmployees: 40,
		departments:     5,
		attendanceOn:    30,
		onLeave:         3,
		pendingLeaves:   7,
	}
	svc := NewService(repo, nil)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(40), stats.TotalEmployees)
	assert.Equal(t, int64(30), stats.TodayAttendance)
	assert.Equal(t, 75.0, stats.AttendanceRate)
	assert.Equal(t, int64(7), stats.PendingLeaves)
}

func TestService_Stats_ZeroEmployeesZeroRate(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.AttendanceRate)
}

func TestService_Stats_ServedFromCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached := StatsResponse{TotalEmployees: 99, AttendanceRate: 50}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet(statsCacheKey).SetVal(string(payload))

	repo := &fakeRepo{activeEmployees: 1}
	svc := NewService(repo, rdb)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(99), stats.TotalEmployees)
	assert.Zero(t, repo.statsQueries, "cache hit must not query the database")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Stats_CacheMissWritesBack(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(statsCacheKey).RedisNil()

	repo := &fakeRepo{activeEmployees: 10, attendanceOn: 5}
	svc := NewService(repo, rdb)

	expected, err := json.Marshal(StatsResponse{
		TotalEmployees:  10,
		TodayAttendance: 5,
		AttendanceRate:  50,
	})
	require.NoError(t, err)
	mock.ExpectSet(statsCacheKey, expected, statsCacheTTL).SetVal("OK")

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 50.0, stats.AttendanceRate)
	assert.Equal(t, 1, repo.statsQueries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Activity_MergesNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	empID := uuid.New()

	repo := &fakeRepo{
		recentEvents: []attendance.BiometricEvent{
			{UserID: userID, Action: attendance.ActionCheckIn, Timestamp: base},
		},
		recentLeaves: []leave.LeaveRequest{
			{EmployeeID: empID, Type: leave.TypeSick, Status: leave.StatusPending, CreatedAt: base.Add(time.Hour)},
		},
	}
	svc := NewService(repo, nil)

	items, err := svc.Activity(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "leave", items[0].Type)
	assert.Equal(t, "requested sick leave", items[0].Message)
	assert.Equal(t, "attendance", items[1].Type)
	assert.Equal(t, "checked in", items[1].Message)
}

func TestService_Activity_TruncatesToLimit(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	var events []attendance.BiometricEvent
	for i := 0; i < 5; i++ {
		events = append(events, attendance.BiometricEvent{
			UserID:    uuid.New(),
			Action:    attendance.ActionCheckIn,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}
	svc := NewService(&fakeRepo{recentEvents: events}, nil)

	items, err := svc.Activity(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, items, 3)
}
