package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/http/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type stubAuth struct {
	claims *jwt.AuthClaims
	err    error
	token  string
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*jwt.AuthClaims, error) {
	s.token = token
	return s.claims, s.err
}

func newApp(auth Authenticator) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: http.ErrorHandler})
	app.Use(ExceptionMiddleware, RequestMiddleware(), UnifiedResponseMiddleware())
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("kaboom")
	})
	app.Get("/detail", func(c *fiber.Ctx) error {
		c.Locals(constant.DETAIL, fiber.Map{"name": "events"})
		return nil
	})
	app.Get("/op", func(c *fiber.Ctx) error {
		c.Locals(constant.OPERATION, "")
		return nil
	})
	app.Get("/me", AuthorizationMiddleware(auth), func(c *fiber.Ctx) error {
		claims, err := GetClaims(c)
		if err != nil {
			return err
		}
		c.Locals(constant.DETAIL, claims.UserId)
		return nil
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, authz string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set(fiber.HeaderAuthorization, authz)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestUnifiedResponseMiddleware(t *testing.T) {
	app := newApp(&stubAuth{})

	status, body := do(t, app, "/detail", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 200, body["code"])
	assert.Equal(t, "events", body["detail"].(map[string]any)["name"])

	status, body = do(t, app, "/op", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Request Success", body["msg"])
	assert.NotContains(t, body, "detail")
}

func TestExceptionMiddleware(t *testing.T) {
	app := newApp(&stubAuth{})
	status, body := do(t, app, "/panic", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, http.InternalError.Msg, body["error"])
}

func TestRequestMiddleware_EchoesId(t *testing.T) {
	app := newApp(&stubAuth{})
	req := httptest.NewRequest(fiber.MethodGet, "/op", nil)
	req.Header.Set(HeaderRequestId, "abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(HeaderRequestId))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/op", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestId))
}

func TestAuthorizationMiddleware(t *testing.T) {
	auth := &stubAuth{claims: &jwt.AuthClaims{UserId: "u1"}}
	app := newApp(auth)

	status, body := do(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.EqualValues(t, http.TokenBeEmpty.Code, body["code"])

	status, body = do(t, app, "/me", "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.EqualValues(t, http.AuthorizationIncorrect.Code, body["code"])

	status, body = do(t, app, "/me", "Bearer abc")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u1", body["detail"])
	assert.Equal(t, "abc", auth.token)

	auth.err = http.SessionRevoked
	status, body = do(t, app, "/me", "Bearer abc")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.EqualValues(t, http.SessionRevoked.Code, body["code"])
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, fiber.StatusForbidden, statusOf(nil, http.PermissionDenied))
	assert.Equal(t, fiber.StatusNotFound, statusOf(nil, fiber.ErrNotFound))
	assert.Equal(t, fiber.StatusInternalServerError, statusOf(nil, errors.New("boom")))
}

func TestTraceMiddleware(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	app := fiber.New(fiber.Config{ErrorHandler: http.ErrorHandler})
	app.Use(RequestMiddleware(), TraceMiddleware())
	var seen string
	app.Get("/tasks/:id", func(c *fiber.Ctx) error {
		seen = trace.SpanContextFromContext(c.UserContext()).TraceID().String()
		return http.TaskNotExist
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tasks/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, seen, resp.Header.Get(HeaderTraceId))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /tasks/:id", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
}

func TestSkipAccessLog(t *testing.T) {
	assert.True(t, skipAccessLog("/health"))
	assert.True(t, skipAccessLog("/metrics"))
	assert.True(t, skipAccessLog("/debug/pprof/heap"))
	assert.False(t, skipAccessLog("/healthz"))
	assert.False(t, skipAccessLog("/tasks/1"))
}

func TestAccessLogMiddleware_PassesErrorsThrough(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: http.ErrorHandler})
	app.Use(RequestMiddleware(), AccessLogMiddleware(&http.Http{AccessLog: true}))
	app.Get("/tasks/:id", func(c *fiber.Ctx) error {
		return http.PermissionDenied
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tasks/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestId))
}
