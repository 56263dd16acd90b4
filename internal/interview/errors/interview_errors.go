package interviewerrors

import (
	"net/http"

	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
)

var (
	ErrCaseNotFound = apperror.New(
		apperror.CodeNotFound,
		"Interview case not found",
		http.StatusNotFound,
	)

	ErrQuestionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Interview question not found",
		http.StatusNotFound,
	)

	ErrAnswerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Answer not found",
		http.StatusNotFound,
	)

	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid identifier",
		http.StatusBadRequest,
	)
)
