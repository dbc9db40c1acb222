package resourceerrors

import (
	"net/http"

	"pto-track/internal/shared/apperror"
)

var (
	ErrResourceNotFound = apperror.New(
		apperror.CodeNotFound,
		"resource not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmployeeNumber = apperror.New(
		apperror.CodeConflict,
		"a resource with this employee number already exists",
		http.StatusConflict,
	)
	ErrUnknownGroup = apperror.New(
		apperror.CodeInvalidInput,
		"referenced group does not exist",
		http.StatusBadRequest,
	)
)
