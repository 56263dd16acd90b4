package autherrors

import (
	"net/http"

	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
)

var (
	// ErrNotInAllowList covers both unknown Google accounts and revoked
	// members; the message deliberately does not distinguish them.
	ErrNotInAllowList = apperror.New(
		apperror.CodeNotInAllowList,
		"This account is not registered for the study group",
		http.StatusForbidden,
	)

	ErrInvalidGoogleToken = apperror.New(
		apperror.CodeUnauthorized,
		"Google sign-in could not be verified",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or expired refresh token",
		http.StatusUnauthorized,
	)

	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"Member not found",
		http.StatusNotFound,
	)
)
