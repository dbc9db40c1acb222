package absenceerrors

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
	ErrAbsenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"absence request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending absence requests can be modified",
		http.StatusBadRequest,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"absence request has already been processed",
		http.StatusBadRequest,
	)
	ErrAlreadyCancelled = apperror.New(
		apperror.CodeInvalidState,
		"absence request is already cancelled",
		http.StatusBadRequest,
	)
	ErrDeleteNotAllowed = apperror.New(
		apperror.CodeInvalidState,
		"only pending or cancelled absence requests can be deleted",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the employee who created the absence request can cancel it",
		http.StatusForbidden,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required when rejecting an absence request",
		http.StatusBadRequest,
	)
)
