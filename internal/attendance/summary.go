package attendance

import (
	"time"

	"go-hrms/internal/employee"
)

// presentThresholdHours splits a completed day into present vs
// half-day. Policy constant inherited from the reporting contract; do
// not make it configurable.
const presentThresholdHours = 4

type SessionView struct {
	Order         int      `json:"order"`
	ClockIn       *string  `json:"clock_in"`
	ClockOut      *string  `json:"clock_out"`
	DurationHours *float64 `json:"duration_hours"`
}

// DailySummary is the per-employee, per-day aggregate consumed by the
// status endpoint, dashboards and reports.
type DailySummary struct {
	Employee     employee.DirectoryEntry `json:"employee"`
	Date         string                  `json:"date"`
	FirstClockIn *string                 `json:"first_clock_in"`
	LastClockOut *string                 `json:"last_clock_out"`
	SessionCount int                     `json:"session_count"`
	TotalHours   float64                 `json:"total_hours"`
	Status       string                  `json:"status"`
	Sessions     []SessionView           `json:"sessions"`
}

// ComputeDailySummary renders one employee-day from an already
// reconciled session list.
//
// Status precedence is fixed: absent when nothing clocked in, else
// in-progress when any session is still open, else present at or above
// the half-day threshold.
func ComputeDailySummary(entry employee.DirectoryEntry, date time.Time, sessions []Session) DailySummary {
	summary := DailySummary{
		Employee: entry,
		Date:     date.Format("2006-01-02"),
		Sessions: make([]SessionView, 0, len(sessions)),
	}

	var firstIn, lastOut *time.Time
	var total float64
	open := false

	for i, s := range sessions {
		view := SessionView{
			Order:    i + 1,
			ClockIn:  isoPtr(s.ClockIn),
			ClockOut: isoPtr(s.ClockOut),
		}
		if d, ok := SessionDuration(s); ok {
			r := round2(d)
			view.DurationHours = &r
			summary.SessionCount++
			total += d
		}
		summary.Sessions = append(summary.Sessions, view)

		// Min/max rather than first/last list entry: manual backfill
		// can append a session that predates the ones already stored.
		if s.ClockIn != nil {
			if firstIn == nil || s.ClockIn.Before(*firstIn) {
				firstIn = s.ClockIn
			}
			if s.ClockOut == nil {
				open = true
			}
		}
		if s.ClockOut != nil && (lastOut == nil || s.ClockOut.After(*lastOut)) {
			lastOut = s.ClockOut
		}
	}

	summary.FirstClockIn = isoPtr(firstIn)
	summary.LastClockOut = isoPtr(lastOut)
	summary.TotalHours = round2(total)

	switch {
	case firstIn == nil:
		summary.Status = StatusAbsent
	case open:
		summary.Status = StatusInProgress
	case summary.TotalHours >= presentThresholdHours:
		summary.Status = StatusPresent
	default:
		summary.Status = StatusHalfDay
	}
	return summary
}

func isoPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
