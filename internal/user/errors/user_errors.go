package usererrors

import (
	"net/http"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	// Email uniqueness is global, not per tenant: the address is the login
	// identifier across every company.
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"Email already registered",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid status",
		http.StatusBadRequest,
	)

	// ErrInvalidResetToken covers unknown, already-used and expired tokens
	// with one message, so the endpoint leaks nothing about which it was.
	ErrInvalidResetToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or expired reset token",
		http.StatusUnauthorized,
	)
)
