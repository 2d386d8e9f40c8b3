package employeeerrors

import (
	"go-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee profile not found",
		http.StatusNotFound,
	)

	ErrEmployeeIDTaken = apperror.New(
		apperror.CodeConflict,
		"This employee ID is already taken",
		http.StatusConflict,
	)
)
