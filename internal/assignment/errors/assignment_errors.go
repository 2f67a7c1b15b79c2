package assignmenterrors

import (
	"net/http"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/apperror"
)

var (
	ErrAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"User is already assigned to this department",
		http.StatusConflict,
	)

	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Assignment not found",
		http.StatusNotFound,
	)

	ErrUserNotInCompany = apperror.New(
		apperror.CodeNotFound,
		"User not found in this company",
		http.StatusNotFound,
	)

	ErrCrossTenantAssignment = apperror.New(
		apperror.CodeInvalidInput,
		"User, department and assignment must belong to the same company",
		http.StatusBadRequest,
	)

	ErrShiftWindowIncomplete = apperror.New(
		apperror.CodeInvalidInput,
		"Both shift_start and shift_end must be provided together",
		http.StatusBadRequest,
	)

	ErrShiftTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Shift times must be in format HH:mm:ss (e.g., 09:00:00)",
		http.StatusBadRequest,
	)

	ErrShiftWindowInverted = apperror.New(
		apperror.CodeInvalidInput,
		"shift_end must be after shift_start",
		http.StatusBadRequest,
	)
)
