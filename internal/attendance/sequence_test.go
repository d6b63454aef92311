package attendance

import (
	"testing"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateSequence_FirstCheckInAllowed(t *testing.T) {
	assert.NoError(t, EvaluateSequence(nil, ActionCheckIn, time.Now()))
}

func TestEvaluateSequence_DoubleCheckInWithinWindowRejected(t *testing.T) {
	now := at(t, "10:00")
	last := BiometricEvent{Action: ActionCheckIn, Timestamp: now.Add(-2 * time.Hour)}

	err := EvaluateSequence(&last, ActionCheckIn, now)

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
}

func TestEvaluateSequence_StaleCheckInReleasedAfterWindow(t *testing.T) {
	now := at(t, "10:00")
	last := BiometricEvent{Action: ActionCheckIn, Timestamp: now.Add(-13 * time.Hour)}

	assert.NoError(t, EvaluateSequence(&last, ActionCheckIn, now))
}

func TestEvaluateSequence_CheckInAtExactWindowBoundaryAllowed(t *testing.T) {
	now := at(t, "10:00")
	last := BiometricEvent{Action: ActionCheckIn, Timestamp: now.Add(-12 * time.Hour)}

	assert.NoError(t, EvaluateSequence(&last, ActionCheckIn, now))
}

func TestEvaluateSequence_CheckInAfterCheckoutAllowed(t *testing.T) {
	now := at(t, "10:00")
	last := BiometricEvent{Action: ActionCheckOut, Timestamp: now.Add(-time.Hour)}

	assert.NoError(t, EvaluateSequence(&last, ActionCheckIn, now))
}

func TestEvaluateSequence_CheckoutWithoutAnyEventRejected(t *testing.T) {
	err := EvaluateSequence(nil, ActionCheckOut, time.Now())

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidSequence)
}

func TestEvaluateSequence_DoubleCheckoutRejected(t *testing.T) {
	now := at(t, "18:00")
	last := BiometricEvent{Action: ActionCheckOut, Timestamp: now.Add(-time.Minute)}

	err := EvaluateSequence(&last, ActionCheckOut, now)

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
}

func TestEvaluateSequence_CheckoutAfterCheckInAllowed(t *testing.T) {
	now := at(t, "18:00")
	last := BiometricEvent{Action: ActionCheckIn, Timestamp: now.Add(-9 * time.Hour)}

	assert.NoError(t, EvaluateSequence(&last, ActionCheckOut, now))
}

func TestEvaluateSequence_UnknownActionRejected(t *testing.T) {
	err := EvaluateSequence(nil, "pause", time.Now())

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidAction)
}
