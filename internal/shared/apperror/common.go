package apperror

import "net/http"

var (
	// ErrInternal masks unexpected failures; ToHTTP falls back to it so raw
	// driver messages never reach clients.
	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	// ErrUnauthorized is the guard response for requests that reach a
	// protected handler without a usable identity.
	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)
)
