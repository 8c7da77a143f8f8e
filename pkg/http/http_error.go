package http

import (
	"errors"
	"fmt"

	"github.com/go-arcade/guild/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// Error is an expected failure carrying the HTTP status it maps to.
// Values declared in http_code.go are shared; use the With* helpers to
// derive a customised copy.
type Error struct {
	Status int
	Code   int
	Msg    string
	Issues any
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func (e *Error) WithMsg(format string, args ...any) *Error {
	cp := *e
	cp.Msg = fmt.Sprintf(format, args...)
	return &cp
}

func (e *Error) WithIssues(issues any) *Error {
	cp := *e
	cp.Issues = issues
	return &cp
}

func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.cause = err
	return &cp
}

type ResponseErr struct {
	ErrCode int    `json:"code"`
	ErrMsg  any    `json:"error"`
	Path    string `json:"path,omitempty"`
}

// WithRepErr writes an error body with the given status
func WithRepErr(c *fiber.Ctx, status, code int, errMsg any) error {
	return c.Status(status).JSON(ResponseErr{
		ErrCode: code,
		ErrMsg:  errMsg,
		Path:    c.Path(),
	})
}

// ErrorHandler renders every error returned by a handler. Anything that is
// not an *Error or *fiber.Error is logged and hidden behind InternalError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Status >= fiber.StatusInternalServerError {
			log.Errorw("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"error", err,
			)
			return WithRepErr(c, e.Status, e.Code, InternalError.Msg)
		}
		if e.Issues != nil {
			return WithRepErr(c, e.Status, e.Code, e.Issues)
		}
		return WithRepErr(c, e.Status, e.Code, e.Msg)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return WithRepErr(c, fe.Code, fe.Code, fe.Message)
	}

	log.Errorw("unhandled error",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return WithRepErr(c, InternalError.Status, InternalError.Code, InternalError.Msg)
}
