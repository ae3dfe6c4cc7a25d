package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var traceIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func newTracingRouter(capture *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	provider := sdktrace.NewTracerProvider()
	r := gin.New()
	r.Use(EnrichContext())
	r.Use(Tracing(propagation.TraceContext{}, provider.Tracer("test")))
	r.GET("/ping", func(c *gin.Context) {
		*capture = GetTraceID(c)
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestTracingAssignsSpanTraceID(t *testing.T) {
	var seen string
	r := newTracingRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	header := rr.Header().Get(TraceIDHeader)
	if !traceIDPattern.MatchString(header) {
		t.Fatalf("trace id header = %q, want 32 hex chars", header)
	}
	if seen != header {
		t.Errorf("handler saw trace id %q, header carries %q", seen, header)
	}
}

func TestTracingContinuesInboundTraceContext(t *testing.T) {
	var seen string
	r := newTracingRouter(&seen)

	const inboundTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("traceparent", "00-"+inboundTraceID+"-00f067aa0ba902b7-01")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get(TraceIDHeader); got != inboundTraceID {
		t.Errorf("trace id = %q, want inbound %q", got, inboundTraceID)
	}
	if seen != inboundTraceID {
		t.Errorf("handler saw trace id %q, want %q", seen, inboundTraceID)
	}
}

func TestTracingOverridesGeneratedTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	provider := sdktrace.NewTracerProvider()

	var fromRequestContext, fromHeader string
	r := gin.New()
	r.Use(EnrichContext())
	r.Use(Tracing(propagation.TraceContext{}, provider.Tracer("test")))
	r.GET("/ping", func(c *gin.Context) {
		if reqCtx := GetRequestContext(c); reqCtx != nil {
			fromRequestContext = reqCtx.TraceID
		}
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	fromHeader = rr.Header().Get(TraceIDHeader)

	// EnrichContext seeds a UUID trace id; the span's id must win.
	if !traceIDPattern.MatchString(fromRequestContext) {
		t.Fatalf("request context trace id = %q, want span trace id", fromRequestContext)
	}
	if fromRequestContext != fromHeader {
		t.Errorf("request context trace id %q differs from header %q", fromRequestContext, fromHeader)
	}
}
