package companyerrors

import (
	"net/http"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrSubdomainTaken = apperror.New(
		apperror.CodeConflict,
		"Subdomain already taken",
		http.StatusConflict,
	)

	ErrCompanyNameTaken = apperror.New(
		apperror.CodeConflict,
		"Company name already taken",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
