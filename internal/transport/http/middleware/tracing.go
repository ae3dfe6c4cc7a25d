package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "booker/transport/http"

// Tracing opens one server span per request, continuing an inbound W3C
// trace context when the caller sends one. The span's trace id replaces
// the generated one so the access log, response header, and exported
// spans all agree.
func Tracing(propagator propagation.TextMapPropagator, tracer trace.Tracer) gin.HandlerFunc {
	if propagator == nil {
		propagator = otel.GetTextMapPropagator()
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return func(c *gin.Context) {
		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Request.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		if sc := span.SpanContext(); sc.IsValid() {
			traceID := sc.TraceID().String()
			c.Set(TraceIDKey, traceID)
			c.Header(TraceIDHeader, traceID)
			if reqCtx := GetRequestContext(c); reqCtx != nil {
				reqCtx.TraceID = traceID
			}
		}

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
