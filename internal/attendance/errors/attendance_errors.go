package attendanceerrors

import (
	"net/http"

	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"Action must be enter or exit",
		http.StatusBadRequest,
	)

	ErrInvalidMemberID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid member ID",
		http.StatusBadRequest,
	)

	ErrLogNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance log not found",
		http.StatusNotFound,
	)

	ErrEventLogUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Attendance records could not be loaded",
		http.StatusServiceUnavailable,
	)
)
