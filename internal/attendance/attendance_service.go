package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"
	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LogQuery struct {
	UserID    string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	RecordBiometricEvent(ctx context.Context, userID, action string, loc *LocationInput) (EventResponse, error)
	ClockIn(ctx context.Context, employeeID string) (RecordResponse, error)
	ClockOut(ctx context.Context, employeeID string) (RecordResponse, error)
	GetDailySummary(ctx context.Context, employeeID, date string) (DailySummary, error)
	GetMyStatus(ctx context.Context, userID string) (DailySummary, error)
	GetReport(ctx context.Context, filter ReportFilter) ([]DailySummary, error)
	GetHistory(ctx context.Context, employeeID, startDate, endDate string) ([]RecordResponse, error)
	GetBiometricLogs(ctx context.Context, q LogQuery) ([]EventResponse, int64, error)
	GetAll(ctx context.Context, limit int) ([]RecordResponse, error)
	CreateManual(ctx context.Context, req ManualAttendanceRequest) (RecordResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory employee.Directory
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(db *sql.DB, repo Repository, directory employee.Directory) Service {
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		logger:    zap.L().Named("attendance.service"),
		now:       time.Now,
	}
}

func (s *service) RecordBiometricEvent(ctx context.Context, userID, action string, loc *LocationInput) (EventResponse, error) {
	if action != ActionCheckIn && action != ActionCheckOut {
		return EventResponse{}, attendanceerrors.ErrInvalidAction
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return EventResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	last, err := qtx.LastEventByUser(ctx, userID)
	if err != nil {
		return EventResponse{}, err
	}
	if err := EvaluateSequence(last, action, now); err != nil {
		return EventResponse{}, err
	}

	ev := &BiometricEvent{
		ID:        uuid.New(),
		UserID:    userUUID,
		Action:    action,
		Timestamp: now,
	}
	if normalized := NormalizeLocation(loc); normalized != nil {
		stored := datatypes.NewJSONType(*normalized)
		ev.Location = &stored
	}

	if err := qtx.CreateEvent(ctx, ev); err != nil {
		s.logger.Error("biometric event persist failed",
			zap.String("user_id", userID),
			zap.String("action", action),
			zap.Error(err))
		return EventResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EventResponse{}, err
	}

	s.logger.Info("biometric event recorded",
		zap.String("user_id", userID),
		zap.String("action", action))
	return mapEventToResponse(*ev), nil
}

func (s *service) ClockIn(ctx context.Context, employeeID string) (RecordResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindRecordOnForUpdate(ctx, employeeID, now)
	if err != nil {
		return RecordResponse{}, err
	}

	ts := now
	if rec == nil {
		rec = &AttendanceRecord{
			ID:         uuid.New(),
			EmployeeID: empUUID,
			Date:       scope.StartOfDay(now),
			Sessions:   datatypes.JSONSlice[Session]{{ClockIn: &ts}},
			Status:     StatusPresent,
		}
		if err := qtx.CreateRecord(ctx, rec); err != nil {
			return RecordResponse{}, err
		}
	} else {
		sessions := RecordSessions(*rec)
		if n := len(sessions); n > 0 && sessions[n-1].ClockIn != nil && sessions[n-1].ClockOut == nil {
			return RecordResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		sessions = append(sessions, Session{ClockIn: &ts})
		rec.Sessions = sessions
		if err := qtx.SaveRecord(ctx, rec); err != nil {
			return RecordResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("clock in", zap.String("employee_id", employeeID))
	return mapRecordToResponse(*rec), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string) (RecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindRecordOnForUpdate(ctx, employeeID, now)
	if err != nil {
		return RecordResponse{}, err
	}
	if rec == nil {
		return RecordResponse{}, attendanceerrors.ErrNoClockInFound
	}

	sessions := RecordSessions(*rec)
	if len(sessions) == 0 {
		return RecordResponse{}, attendanceerrors.ErrNoClockInFound
	}
	if sessions[len(sessions)-1].ClockOut != nil {
		return RecordResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	ts := now
	sessions[len(sessions)-1].ClockOut = &ts
	rec.Sessions = sessions
	rec.TotalHours = round2(CompletedHours(sessions))

	if err := qtx.SaveRecord(ctx, rec); err != nil {
		return RecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("clock out",
		zap.String("employee_id", employeeID),
		zap.Float64("total_hours", rec.TotalHours))
	return mapRecordToResponse(*rec), nil
}

func (s *service) GetDailySummary(ctx context.Context, employeeID, date string) (DailySummary, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return DailySummary{}, attendanceerrors.ErrInvalidEmployeeID
	}
	day, err := parseDay(date, s.now())
	if err != nil {
		return DailySummary{}, err
	}

	entries, err := s.directory.ListEntries(ctx, employee.DirectoryFilter{EmployeeID: employeeID})
	if err != nil {
		return DailySummary{}, err
	}
	if len(entries) == 0 {
		return DailySummary{}, attendanceerrors.ErrRecordNotFound
	}

	return s.summarizeEntryDay(ctx, entries[0], day)
}

func (s *service) GetMyStatus(ctx context.Context, userID string) (DailySummary, error) {
	entry, err := s.directory.FindEntryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DailySummary{}, attendanceerrors.ErrEmployeeNotLinked
		}
		return DailySummary{}, err
	}
	return s.summarizeEntryDay(ctx, *entry, s.now())
}

// summarizeEntryDay resolves the session source for one employee-day.
// Persisted session-schema sessions are authoritative; raw biometric
// events are a fallback only when no sessions exist, never a merge.
// Merging both sources would double count a day that has both.
func (s *service) summarizeEntryDay(ctx context.Context, entry employee.DirectoryEntry, day time.Time) (DailySummary, error) {
	recs, err := s.repo.FindRecordsByEmployeesOn(ctx, []string{entry.ID}, day)
	if err != nil {
		return DailySummary{}, err
	}

	sessions := ExtractSessions(recs)
	if len(sessions) == 0 && entry.User != nil {
		events, err := s.repo.FindEventsByUserOn(ctx, entry.User.ID, day)
		if err != nil {
			return DailySummary{}, err
		}
		sessions = BuildSessionsFromEvents(events)
	}

	return ComputeDailySummary(entry, day, sessions), nil
}

func (s *service) GetHistory(ctx context.Context, employeeID, startDate, endDate string) ([]RecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	var from, to *time.Time
	if startDate != "" || endDate != "" {
		if startDate == "" || endDate == "" {
			return nil, attendanceerrors.ErrIncompleteRange
		}
		start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		from, to = &start, &end
	}

	recs, err := s.repo.FindRecordsByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]RecordResponse, len(recs))
	for i, rec := range recs {
		out[i] = mapRecordToResponse(rec)
	}
	return out, nil
}

const maxRecentRecords = 100

// GetAll lists the most recent attendance records across all
// employees, newest first.
func (s *service) GetAll(ctx context.Context, limit int) ([]RecordResponse, error) {
	if limit <= 0 || limit > maxRecentRecords {
		limit = maxRecentRecords
	}

	recs, err := s.repo.FindRecentRecords(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]RecordResponse, len(recs))
	for i, rec := range recs {
		out[i] = mapRecordToResponse(rec)
	}
	return out, nil
}

func (s *service) GetBiometricLogs(ctx context.Context, q LogQuery) ([]EventResponse, int64, error) {
	if _, err := uuid.Parse(q.UserID); err != nil {
		return nil, 0, attendanceerrors.ErrInvalidEmployeeID
	}
	filter := EventLogFilter{UserID: q.UserID}
	if q.StartDate != "" || q.EndDate != "" {
		if q.StartDate == "" || q.EndDate == "" {
			return nil, 0, attendanceerrors.ErrIncompleteRange
		}
		from, err := time.ParseInLocation("2006-01-02", q.StartDate, time.Local)
		if err != nil {
			return nil, 0, attendanceerrors.ErrInvalidDate
		}
		to, err := time.ParseInLocation("2006-01-02", q.EndDate, time.Local)
		if err != nil {
			return nil, 0, attendanceerrors.ErrInvalidDate
		}
		filter.From, filter.To = &from, &to
	}

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	events, total, err := s.repo.ListEvents(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]EventResponse, len(events))
	for i, ev := range events {
		out[i] = mapEventToResponse(ev)
	}
	return out, total, nil
}

// CreateManual lets an administrator backfill a day. The record is
// flagged manual so reports can tell it apart from device-driven rows.
func (s *service) CreateManual(ctx context.Context, req ManualAttendanceRequest) (RecordResponse, error) {
	empUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidDate
	}
	clockIn, err := time.Parse(time.RFC3339, req.ClockIn)
	if err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidDate
	}

	session := Session{ClockIn: &clockIn}
	if req.ClockOut != "" {
		clockOut, err := time.Parse(time.RFC3339, req.ClockOut)
		if err != nil {
			return RecordResponse{}, attendanceerrors.ErrInvalidDate
		}
		session.ClockOut = &clockOut
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindRecordOnForUpdate(ctx, req.EmployeeID, day)
	if err != nil {
		return RecordResponse{}, err
	}
	if rec == nil {
		rec = &AttendanceRecord{
			ID:         uuid.New(),
			EmployeeID: empUUID,
			Date:       scope.StartOfDay(day),
			Sessions:   datatypes.JSONSlice[Session]{session},
			Status:     StatusManual,
		}
		rec.TotalHours = round2(CompletedHours(RecordSessions(*rec)))
		if err := qtx.CreateRecord(ctx, rec); err != nil {
			return RecordResponse{}, err
		}
	} else {
		sessions := append(RecordSessions(*rec), session)
		rec.Sessions = sessions
		rec.Status = StatusManual
		rec.TotalHours = round2(CompletedHours(sessions))
		if err := qtx.SaveRecord(ctx, rec); err != nil {
			return RecordResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("manual attendance recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date))
	return mapRecordToResponse(*rec), nil
}

// parseDay parses YYYY-MM-DD in server-local time; empty means today.
func parseDay(date string, fallback time.Time) (time.Time, error) {
	if date == "" {
		return fallback, nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDate
	}
	return day, nil
}
