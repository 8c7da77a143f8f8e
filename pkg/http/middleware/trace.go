package middleware

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	pkgtrace "github.com/go-arcade/guild/pkg/trace"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const HeaderTraceId = "X-Trace-Id"

// TraceMiddleware opens a server span per request. The span context is put
// on c.UserContext() so services and gorm statements join the same trace.
func TraceMiddleware() fiber.Handler {
	tracer := pkgtrace.Tracer("fiber")
	return func(c *fiber.Ctx) error {
		carrier := propagation.HeaderCarrier{}
		c.Request().Header.VisitAll(func(k, v []byte) {
			carrier.Set(string(k), string(v))
		})
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)

		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("url.path", c.Path()),
			),
		)
		defer span.End()

		if rid, ok := c.Locals(constant.REQUEST_ID).(string); ok {
			span.SetAttributes(attribute.String("http.request_id", rid))
		}
		if tid := pkgtrace.TraceId(ctx); tid != "" {
			c.Set(HeaderTraceId, tid)
		}
		c.SetUserContext(ctx)

		err := c.Next()

		// fiber resolves the route pattern only after matching
		if route := c.Route().Path; route != "" && route != "/" {
			span.SetName(c.Method() + " " + route)
			span.SetAttributes(attribute.String("http.route", route))
		}
		status := statusOf(c, err)
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "server error")
			if err != nil {
				span.RecordError(err)
			}
		}
		return err
	}
}
