package grouperrors

import (
	"net/http"

	"pto-track/internal/shared/apperror"
)

var (
	ErrGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"group not found",
		http.StatusNotFound,
	)
	ErrGroupHasResources = apperror.New(
		apperror.CodeInvalidState,
		"group cannot be deleted while resources reference it",
		http.StatusBadRequest,
	)
	ErrDuplicateGroupName = apperror.New(
		apperror.CodeConflict,
		"a group with this name already exists",
		http.StatusConflict,
	)
)
