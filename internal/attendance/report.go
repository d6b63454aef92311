package attendance

import (
	"context"
	"sort"
	"strings"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"

	"github.com/google/uuid"
)

// GetReport fans the daily summary out over a set of employees and
// either a single date or a date range.
func (s *service) GetReport(ctx context.Context, filter ReportFilter) ([]DailySummary, error) {
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
	}
	if filter.DepartmentID != "" {
		if _, err := uuid.Parse(filter.DepartmentID); err != nil {
			return nil, attendanceerrors.ErrInvalidDepartmentID
		}
	}

	if filter.StartDate != "" || filter.EndDate != "" {
		if filter.StartDate == "" || filter.EndDate == "" {
			return nil, attendanceerrors.ErrIncompleteRange
		}
		from, err := time.ParseInLocation("2006-01-02", filter.StartDate, time.Local)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		to, err := time.ParseInLocation("2006-01-02", filter.EndDate, time.Local)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		return s.rangeReport(ctx, filter, from, to)
	}

	day, err := parseDay(filter.Date, s.now())
	if err != nil {
		return nil, err
	}
	return s.singleDateReport(ctx, filter, day)
}

// singleDateReport produces one row per matching employee, including
// absent rows for employees with no data at all. Employees without
// session-schema records fall back to that day's biometric events.
func (s *service) singleDateReport(ctx context.Context, filter ReportFilter, day time.Time) ([]DailySummary, error) {
	entries, err := s.directory.ListEntries(ctx, employee.DirectoryFilter{
		EmployeeID:   filter.EmployeeID,
		DepartmentID: filter.DepartmentID,
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []DailySummary{}, nil
	}

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}

	recs, err := s.repo.FindRecordsByEmployeesOn(ctx, ids, day)
	if err != nil {
		return nil, err
	}
	recsByEmployee := make(map[string][]AttendanceRecord)
	for _, rec := range recs {
		key := rec.EmployeeID.String()
		recsByEmployee[key] = append(recsByEmployee[key], rec)
	}

	sessionsByEmployee := make(map[string][]Session, len(entries))
	var fallbackUserIDs []string
	userToEmployee := make(map[string]string)
	for _, entry := range entries {
		sessions := ExtractSessions(recsByEmployee[entry.ID])
		sessionsByEmployee[entry.ID] = sessions
		if len(sessions) == 0 && entry.User != nil {
			fallbackUserIDs = append(fallbackUserIDs, entry.User.ID)
			userToEmployee[entry.User.ID] = entry.ID
		}
	}

	// Biometric fallback, batched over every employee that had no
	// session-schema data for the day.
	if len(fallbackUserIDs) > 0 {
		events, err := s.repo.FindEventsByUsersOn(ctx, fallbackUserIDs, day)
		if err != nil {
			return nil, err
		}
		eventsByUser := make(map[string][]BiometricEvent)
		for _, ev := range events {
			key := ev.UserID.String()
			eventsByUser[key] = append(eventsByUser[key], ev)
		}
		for userID, employeeID := range userToEmployee {
			sessionsByEmployee[employeeID] = BuildSessionsFromEvents(eventsByUser[userID])
		}
	}

	summaries := make([]DailySummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, ComputeDailySummary(entry, day, sessionsByEmployee[entry.ID]))
	}

	sortSummaries(summaries)
	return summaries, nil
}

// rangeReport groups session-schema records by employee-day. Employees
// with no records in the range produce no rows, and the biometric
// fallback is not applied here: scanning the event log per employee
// over an open-ended range is avoided on cost grounds.
func (s *service) rangeReport(ctx context.Context, filter ReportFilter, from, to time.Time) ([]DailySummary, error) {
	var ids []string
	if filter.EmployeeID != "" {
		ids = []string{filter.EmployeeID}
	}

	recs, err := s.repo.FindRecordsByEmployeesBetween(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []DailySummary{}, nil
	}

	entries, err := s.directory.ListEntries(ctx, employee.DirectoryFilter{EmployeeID: filter.EmployeeID})
	if err != nil {
		return nil, err
	}
	entryByID := make(map[string]employee.DirectoryEntry, len(entries))
	for _, entry := range entries {
		entryByID[entry.ID] = entry
	}

	type groupKey struct {
		employeeID string
		day        string
	}
	groups := make(map[groupKey][]AttendanceRecord)
	var order []groupKey
	for _, rec := range recs {
		key := groupKey{
			employeeID: rec.EmployeeID.String(),
			day:        rec.Date.Format("2006-01-02"),
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	summaries := make([]DailySummary, 0, len(order))
	for _, key := range order {
		entry, ok := entryByID[key.employeeID]
		if !ok {
			continue
		}
		// Grouping is keyed by employee, so a department filter has to
		// be re-checked against the joined metadata here.
		if filter.DepartmentID != "" {
			if entry.Department == nil || entry.Department.ID != filter.DepartmentID {
				continue
			}
		}
		day, err := time.ParseInLocation("2006-01-02", key.day, time.Local)
		if err != nil {
			continue
		}
		summaries = append(summaries, ComputeDailySummary(entry, day, ExtractSessions(groups[key])))
	}

	sortSummaries(summaries)
	return summaries, nil
}

// sortSummaries orders rows by date descending, then by display name
// ascending, compared case-insensitively.
func sortSummaries(summaries []DailySummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Date != summaries[j].Date {
			return summaries[i].Date > summaries[j].Date
		}
		return strings.ToLower(summaries[i].Employee.DisplayName()) <
			strings.ToLower(summaries[j].Employee.DisplayName())
	})
}
