package attendanceerrors

import (
	"go-attendance/internal/shared/apperror"
	"net/http"
)

// Invalid transitions are informational, not failures: the daily record stays
// exactly as it was and the message tells the employee what actually happened.
var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"You have already checked in today",
		http.StatusConflict,
	)

	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"You have already checked out today",
		http.StatusConflict,
	)

	ErrCheckInRequired = apperror.New(
		apperror.CodeInvalidState,
		"Please check in first before checking out",
		http.StatusConflict,
	)

	ErrUnknownAction = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown attendance action",
		http.StatusBadRequest,
	)
)
