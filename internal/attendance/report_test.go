package attendance

import (
	"context"
	"testing"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directoryEntry(name string, empID, userID uuid.UUID, dept *employee.DepartmentInfo) employee.DirectoryEntry {
	return employee.DirectoryEntry{
		ID:         empID.String(),
		Department: dept,
		User:       &employee.UserInfo{ID: userID.String(), Name: name, Email: name + "@co.test"},
	}
}

func TestService_GetReport_SingleDateSynthesizesAbsentRows(t *testing.T) {
	emp1, user1 := uuid.New(), uuid.New()
	emp2, user2 := uuid.New(), uuid.New()
	in := at(t, "09:00")
	out := at(t, "14:00")

	dir := &fakeDirectory{
		listEntriesFn: func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{
				directoryEntry("Ana", emp1, user1, nil),
				directoryEntry("Budi", emp2, user2, nil),
			}, nil
		},
	}
	repo := &fakeRepo{
		findRecordsByEmpsOnFn: func(ctx context.Context, ids []string, day time.Time) ([]AttendanceRecord, error) {
			return []AttendanceRecord{{
				EmployeeID: emp1,
				Sessions:   []Session{{ClockIn: &in, ClockOut: &out}},
			}}, nil
		},
		findEventsByUsersOnFn: func(ctx context.Context, userIDs []string, day time.Time) ([]BiometricEvent, error) {
			assert.Equal(t, []string{user2.String()}, userIDs)
			return nil, nil
		},
	}
	svc, _ := newTestService(t, repo, dir, at(t, "15:00"))

	rows, err := svc.GetReport(context.Background(), ReportFilter{Date: "2026-03-02"})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0].Employee.DisplayName())
	assert.Equal(t, StatusPresent, rows[0].Status)
	assert.Equal(t, "Budi", rows[1].Employee.DisplayName())
	assert.Equal(t, StatusAbsent, rows[1].Status)
}

func TestService_GetReport_SingleDateBiometricFallback(t *testing.T) {
	empID, userID := uuid.New(), uuid.New()

	dir := &fakeDirectory{
		listEntriesFn: func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{directoryEntry("Ana", empID, userID, nil)}, nil
		},
	}
	repo := &fakeRepo{
		findRecordsByEmpsOnFn: func(ctx context.Context, ids []string, day time.Time) ([]AttendanceRecord, error) {
			return nil, nil
		},
		findEventsByUsersOnFn: func(ctx context.Context, userIDs []string, day time.Time) ([]BiometricEvent, error) {
			ev1 := event(t, ActionCheckIn, "09:00")
			ev1.UserID = userID
			ev2 := event(t, ActionCheckOut, "14:00")
			ev2.UserID = userID
			return []BiometricEvent{ev1, ev2}, nil
		},
	}
	svc, _ := newTestService(t, repo, dir, at(t, "15:00"))

	rows, err := svc.GetReport(context.Background(), ReportFilter{Date: "2026-03-02"})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusPresent, rows[0].Status)
	assert.Equal(t, 5.0, rows[0].TotalHours)
	assert.Equal(t, 1, rows[0].SessionCount)
}

func TestService_GetReport_SessionsSuppressFallbackEvenWhenEventsExist(t *testing.T) {
	empID, userID := uuid.New(), uuid.New()
	in := at(t, "09:00")
	out := at(t, "11:00")

	dir := &fakeDirectory{
		listEntriesFn: func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{directoryEntry("Ana", empID, userID, nil)}, nil
		},
	}
	fallbackQueried := false
	repo := &fakeRepo{
		findRecordsByEmpsOnFn: func(ctx context.Context, ids []string, day time.Time) ([]AttendanceRecord, error) {
			return []AttendanceRecord{{
				EmployeeID: empID,
				Sessions:   []Session{{ClockIn: &in, ClockOut: &out}},
			}}, nil
		},
		findEventsByUsersOnFn: func(ctx context.Context, userIDs []string, day time.Time) ([]BiometricEvent, error) {
			fallbackQueried = true
			return nil, nil
		},
	}
	svc, _ := newTestService(t, repo, dir, at(t, "15:00"))

	rows, err := svc.GetReport(context.Background(), ReportFilter{Date: "2026-03-02"})

	require.NoError(t, err)
	assert.False(t, fallbackQueried)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].TotalHours)
}

func TestService_GetReport_RangeGroupsByEmployeeDay(t *testing.T) {
	empID, userID := uuid.New(), uuid.New()
	day1 := at(t, "00:00")
	day2 := day1.AddDate(0, 0, 1)
	in1, out1 := day1.Add(9*time.Hour), day1.Add(17*time.Hour)
	in2, out2 := day2.Add(9*time.Hour), day2.Add(12*time.Hour)

	dir := &fakeDirectory{
		listEntriesFn: func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{directoryEntry("Ana", empID, userID, nil)}, nil
		},
	}
	repo := &fakeRepo{
		findRecordsBetweenFn: func(ctx context.Context, ids []string, from, to time.Time) ([]AttendanceRecord, error) {
			return []AttendanceRecord{
				{EmployeeID: empID, Date: day1, Sessions: []Session{{ClockIn: &in1, ClockOut: &out1}}},
				{EmployeeID: empID, Date: day2, Sessions: []Session{{ClockIn: &in2, ClockOut: &out2}}},
			}, nil
		},
	}
	svc, _ := newTestService(t, repo, dir, at(t, "15:00"))

	rows, err := svc.GetReport(context.Background(), ReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-05",
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Date descending.
	assert.Equal(t, "2026-03-03", rows[0].Date)
	assert.Equal(t, StatusHalfDay, rows[0].Status)
	assert.Equal(t, "2026-03-02", rows[1].Date)
	assert.Equal(t, StatusPresent, rows[1].Status)
}

func TestService_GetReport_RangeNeverFallsBackToEvents(t *testing.T) {
	dir := &fakeDirectory{
		listEntriesFn: func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{directoryEntry("Ana", uuid.New(), uuid.New(), nil)}, nil
		},
	}
	repo := &fakeRepo{
		findRecordsBetweenFn: func(ctx context.Context, ids []string, from, to time.Time) ([]AttendanceRecord, error) {
			return nil, nil
		},
		findEventsByUsersOnFn: func(ctx context.Context, userIDs []string, day time.Time) ([]BiometricEvent, error) {
			t.Fatal("range queries must not read the biometric log")
			return nil, nil
		},
	}
	svc, _ := newTestService(t, repo, dir, at(t, "15:00"))

	rows, err := svc.GetReport(context.Background(), ReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-05",
	})

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestService_GetReport_RangeDepartmentPostFilter(t *testing.T) {
	deptID := uuid.New()
	empIn, userIn := uuid.New(), uuid.New()
	empOut, userOut := uuid.New(), uuid.New()
	day := at(t, "00:00")
	in, out := day.Add(9*time.Hour), day.Add(17*time.Hour)

	dir := &fakeDirectory{
		listEntriesFn: func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{
				directoryEntry("Ana", empIn, userIn, &employee.DepartmentInfo{ID: deptID.String(), Name: "Engineering"}),
				directoryEntry("Budi", empOut, userOut, &employee.DepartmentInfo{ID: uuid.NewString(), Name: "Sales"}),
			}, nil
		},
	}
	repo := &fakeRepo{
		findRecordsBetweenFn: func(ctx context.Context, ids []string, from, to time.Time) ([]AttendanceRecord, error) {
			return []AttendanceRecord{
				{EmployeeID: empIn, Date: day, Sessions: []Session{{ClockIn: &in, ClockOut: &out}}},
				{EmployeeID: empOut, Date: day, Sessions: []Session{{ClockIn: &in, ClockOut: &out}}},
			}, nil
		},
	}
	svc, _ := newTestService(t, repo, dir, at(t, "15:00"))

	rows, err := svc.GetReport(context.Background(), ReportFilter{
		DepartmentID: deptID.String(),
		StartDate:    "2026-03-01",
		EndDate:      "2026-03-05",
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].Employee.DisplayName())
}

func TestService_GetReport_SortsByDateDescThenNameAsc(t *testing.T) {
	empA, userA := uuid.New(), uuid.New()
	empB, userB := uuid.New(), uuid.New()
	day := at(t, "00:00")
	in, out := day.Add(9*time.Hour), day.Add(17*time.Hour)

	dir := &fakeDirectory{
		listEntriesFn: func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{
				directoryEntry("zulkifli", empA, userA, nil),
				directoryEntry("Andi", empB, userB, nil),
			}, nil
		},
	}
	repo := &fakeRepo{
		findRecordsByEmpsOnFn: func(ctx context.Context, ids []string, day time.Time) ([]AttendanceRecord, error) {
			return []AttendanceRecord{
				{EmployeeID: empA, Date: day, Sessions: []Session{{ClockIn: &in, ClockOut: &out}}},
				{EmployeeID: empB, Date: day, Sessions: []Session{{ClockIn: &in, ClockOut: &out}}},
			}, nil
		},
		findEventsByUsersOnFn: func(ctx context.Context, userIDs []string, day time.Time) ([]BiometricEvent, error) {
			return nil, nil
		},
	}
	svc, _ := newTestService(t, repo, dir, at(t, "15:00"))

	rows, err := svc.GetReport(context.Background(), ReportFilter{Date: "2026-03-02"})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Case-insensitive name ordering within the same date.
	assert.Equal(t, "Andi", rows[0].Employee.DisplayName())
	assert.Equal(t, "zulkifli", rows[1].Employee.DisplayName())
}

func TestService_GetReport_IncompleteRangeRejected(t *testing.T) {
	svc, _ := newTestService(t, &fakeRepo{}, &fakeDirectory{}, at(t, "15:00"))

	_, err := svc.GetReport(context.Background(), ReportFilter{EndDate: "2026-03-05"})

	assert.ErrorIs(t, err, attendanceerrors.ErrIncompleteRange)
}

func TestService_GetReport_InvalidIDsRejected(t *testing.T) {
	svc, _ := newTestService(t, &fakeRepo{}, &fakeDirectory{}, at(t, "15:00"))

	_, err := svc.GetReport(context.Background(), ReportFilter{EmployeeID: "nope"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)

	_, err = svc.GetReport(context.Background(), ReportFilter{DepartmentID: "nope"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDepartmentID)
}
