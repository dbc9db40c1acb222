package eventerrors

import (
	"net/http"

	"pto-track/internal/shared/apperror"
)

var (
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end must be greater than start",
		http.StatusBadRequest,
	)
	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"scheduler event not found",
		http.StatusNotFound,
	)
	ErrUnknownResource = apperror.New(
		apperror.CodeInvalidInput,
		"resourceId does not refer to a known resource",
		http.StatusBadRequest,
	)
)
