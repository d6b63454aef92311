package attendance

import (
	"math"
	"sort"
	"time"
)

// BuildSessionsFromEvents folds a raw biometric event log into an
// ordered session list. Anomalies are preserved rather than dropped: a
// duplicate check-in pushes the unterminated session as-is, and a
// checkout with no open session becomes a session with a nil clock-in.
func BuildSessionsFromEvents(events []BiometricEvent) []Session {
	sorted := make([]BiometricEvent, 0, len(events))
	for _, ev := range events {
		if ev.Timestamp.IsZero() {
			continue
		}
		sorted = append(sorted, ev)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var out []Session
	var active *Session
	for _, ev := range sorted {
		ts := ev.Timestamp
		switch ev.Action {
		case ActionCheckIn:
			if active != nil {
				out = append(out, *active)
			}
			active = &Session{ClockIn: &ts}
		case ActionCheckOut:
			if active != nil {
				active.ClockOut = &ts
				out = append(out, *active)
				active = nil
			} else {
				out = append(out, Session{ClockOut: &ts})
			}
		}
	}
	if active != nil {
		out = append(out, *active)
	}
	return out
}

// RecordSessions adapts one stored record to the canonical session
// list. Rows from the flat schema become a single session; the stored
// row itself is never rewritten by a read.
func RecordSessions(rec AttendanceRecord) []Session {
	if len(rec.Sessions) > 0 {
		return []Session(rec.Sessions)
	}
	if rec.ClockIn == nil && rec.ClockOut == nil {
		return nil
	}
	return []Session{{ClockIn: rec.ClockIn, ClockOut: rec.ClockOut}}
}

// ExtractSessions concatenates the session lists of several records in
// record order. Each record is already internally paired, so no
// re-sorting across record boundaries happens here.
func ExtractSessions(records []AttendanceRecord) []Session {
	var out []Session
	for _, rec := range records {
		out = append(out, RecordSessions(rec)...)
	}
	return out
}

// SessionDuration reports the session's length in fractional hours.
// Sessions missing either endpoint report ok = false.
func SessionDuration(s Session) (float64, bool) {
	if s.ClockIn == nil || s.ClockOut == nil {
		return 0, false
	}
	return s.ClockOut.Sub(*s.ClockIn).Hours(), true
}

// CompletedHours sums completed-session durations without rounding;
// rounding happens once, at the summary boundary.
func CompletedHours(sessions []Session) float64 {
	var total float64
	for _, s := range sessions {
		if d, ok := SessionDuration(s); ok {
			total += d
		}
	}
	return total
}

// LiveHours is CompletedHours plus the ticking duration of any open
// session, measured against now. Used only where a live total is
// explicitly wanted; persisted totals never include open sessions.
func LiveHours(sessions []Session, now time.Time) float64 {
	total := CompletedHours(sessions)
	for _, s := range sessions {
		if s.ClockIn != nil && s.ClockOut == nil {
			if d := now.Sub(*s.ClockIn); d > 0 {
				total += d.Hours()
			}
		}
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
