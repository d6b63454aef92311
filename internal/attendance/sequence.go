package attendance

import (
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
)

// staleCheckInWindow is how long an unterminated check-in blocks a new
// one. After this window the old check-in is treated as a forgotten
// checkout, so an overnight mistake does not lock the employee out.
const staleCheckInWindow = 12 * time.Hour

// EvaluateSequence decides whether the requested action is legal given
// the employee's single most recent biometric event. The last event is
// taken globally, not per calendar day; see staleCheckInWindow.
func EvaluateSequence(last *BiometricEvent, action string, now time.Time) error {
	switch action {
	case ActionCheckIn:
		if last != nil && last.Action == ActionCheckIn && now.Sub(last.Timestamp) < staleCheckInWindow {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
		return nil
	case ActionCheckOut:
		if last == nil {
			return attendanceerrors.ErrInvalidSequence
		}
		if last.Action == ActionCheckOut {
			return attendanceerrors.ErrAlreadyCheckedOut
		}
		return nil
	default:
		return attendanceerrors.ErrInvalidAction
	}
}
