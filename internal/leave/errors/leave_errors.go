package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from_date must not be after to_date",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrOverlappingLeave = apperror.New(
		apperror.CodeConflict,
		"an overlapping leave request already exists",
		http.StatusConflict,
	)
	ErrLeaveAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"this leave request has already been processed",
		http.StatusConflict,
	)
	ErrInvalidDecisionToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid or expired decision link",
		http.StatusUnauthorized,
	)
	ErrEmployeeNotLinked = apperror.New(
		apperror.CodeNotFound,
		"no employee record is linked to this account",
		http.StatusNotFound,
	)
)
