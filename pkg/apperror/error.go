package apperror

import "net/http"

// Kind identifies one of the closed set of failure categories the
// recommendation core can surface to the transport layer.
type Kind string

const (
	KindUserNotFound     Kind = "user_not_found"
	KindInsufficientData Kind = "insufficient_data"
	KindUpstream         Kind = "upstream_error"
	KindRecommendation   Kind = "recommendation_error"
	KindBadRequest       Kind = "bad_request"
	KindInternal         Kind = "internal"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(KindBadRequest, http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindInternal, http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}

// UserNotFound is returned when GitHub reports no such account.
func UserNotFound(message string) *AppError {
	return New(KindUserNotFound, http.StatusNotFound, message, nil)
}

// InsufficientData is the hard cold-start failure: the user has zero public
// repositories and a profile cannot be synthesized without explicit input.
func InsufficientData(message string) *AppError {
	return New(KindInsufficientData, http.StatusBadRequest, message, nil)
}

// Upstream wraps a GitHub API or network failure.
func Upstream(message string, err error) *AppError {
	return New(KindUpstream, http.StatusServiceUnavailable, message, err)
}

// Recommendation wraps an unexpected failure during ranking, carrying the
// original cause.
func Recommendation(message string, err error) *AppError {
	return New(KindRecommendation, http.StatusInternalServerError, message, err)
}
