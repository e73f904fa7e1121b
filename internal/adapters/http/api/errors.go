package api

import (
	"errors"
	"net/http"

	service "github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("service unavailable")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// Error tags a failure with the handler that produced it and an API kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	var out []error
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap tags err with op, deriving the kind from the service error.
func Wrap(op string, err error) *Error {
	return &Error{Op: op, Kind: kindOf(err), Err: err}
}

// NewKind creates an error of kind with no further cause.
func NewKind(op string, kind error) *Error {
	return &Error{Op: op, Kind: kind}
}

// WrapKind tags err with op and an explicit kind.
func WrapKind(op string, kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func kindOf(err error) error {
	switch {
	case err == nil:
		return nil
	case service.IsNotFound(err):
		return ErrNotFound
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, service.ErrModeNotSupported):
		return ErrBadRequest
	case errors.Is(err, service.ErrBackpressure):
		return ErrBackpressure
	case errors.Is(err, service.ErrNotStarted):
		return ErrUnavailable
	default:
		return nil
	}
}

// statusOf maps an error to its HTTP status and response code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

var errLimit = errors.New("limit must be a non-negative integer")
