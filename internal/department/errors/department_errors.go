package departmenterrors

import (
	"net/http"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found or does not belong to your company",
		http.StatusNotFound,
	)

	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"Department with the same name already exists in this company",
		http.StatusConflict,
	)

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
)
