package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/domingues497/stockplant/pkg/allocation"
	"github.com/domingues497/stockplant/pkg/logger"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf("%s not found", what))
}

func Forbidden(msg string) *Error {
	return New(http.StatusForbidden, "forbidden", errors.New(msg))
}

func Invalid(msg string) *Error {
	return New(http.StatusBadRequest, "invalid_input", errors.New(msg))
}

func Conflict(msg string) *Error {
	return New(http.StatusConflict, "conflict", errors.New(msg))
}

// StatusOf returns the HTTP status err maps to.
func StatusOf(err error) int {
	var v allocation.Violation
	if errors.As(err, &v) {
		return http.StatusUnprocessableEntity
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// Respond writes err as a JSON error body. Unknown errors are logged and
// reported as a bare 500.
func Respond(c echo.Context, log *logger.Logger, err error) error {
	var v allocation.Violation
	if errors.As(err, &v) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":        v.Error(),
			"kind":         v.Kind,
			"season":       v.Season,
			"cap":          v.Cap,
			"existing_sum": v.Existing,
			"requested":    v.Requested,
			"remaining":    v.Remaining(),
		})
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 && ae.Status < http.StatusInternalServerError {
		return c.JSON(ae.Status, map[string]string{"error": ae.Error(), "code": ae.Code})
	}
	log.Error("request failed", "path", c.Path(), "method", c.Request().Method, "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
