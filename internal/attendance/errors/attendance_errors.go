package attendanceerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

// Sequence and state violations surface the same user-facing wording the
// portal shows, so handlers pass them through untouched.
var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"Already checked in. Please checkout before checking in again.",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"Already checked out.",
		http.StatusConflict,
	)
	ErrInvalidSequence = apperror.New(
		apperror.CodeInvalidState,
		"Cannot checkout without a prior checkin",
		http.StatusConflict,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"Already clocked in. Please clock out first.",
		http.StatusConflict,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeInvalidState,
		"Already clocked out. Please clock in first.",
		http.StatusConflict,
	)
	ErrNoClockInFound = apperror.New(
		apperror.CodeInvalidState,
		"No clock-in record found",
		http.StatusConflict,
	)
)

var (
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be checkin or checkout",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrIncompleteRange = apperror.New(
		apperror.CodeInvalidInput,
		"both start_date and end_date are required for a range query",
		http.StatusBadRequest,
	)
	ErrEmployeeNotLinked = apperror.New(
		apperror.CodeNotFound,
		"no employee record is linked to this account",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
)
