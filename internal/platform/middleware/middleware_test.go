package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	if err := RequestID()(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	rid, _ := c.Get("request_id").(string)
	if rid == "" {
		t.Fatal("expected request_id to be set on context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != rid {
		t.Errorf("response header %q = %q, want %q", RequestIDHeader, got, rid)
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")
	c.Request().Header.Set(RequestIDHeader, "client-supplied-id")

	if err := RequestID()(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rid, _ := c.Get("request_id").(string); rid != "client-supplied-id" {
		t.Errorf("context request_id = %q, want client-supplied-id", rid)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("response header = %q, want client-supplied-id", got)
	}
}

func TestLogger_PassesThroughHandlerError(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")
	logger := zerolog.Nop()

	wantErr := echo.NewHTTPError(http.StatusNotFound, "missing")
	err := Logger(logger)(func(c echo.Context) error {
		return wantErr
	})(c)

	if err != wantErr {
		t.Errorf("expected handler error to propagate, got %v", err)
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")
	logger := zerolog.Nop()

	err := Recovery(logger)(func(c echo.Context) error {
		panic("boom")
	})(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", httpErr.Code)
	}
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})

	var lastErr error
	for i := 0; i < 3; i++ {
		c, _ := newTestContext(http.MethodGet, "/")
		lastErr = mw(okHandler)(c)
	}

	httpErr, ok := lastErr.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError on third request, got %v", lastErr)
	}
	if httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", httpErr.Code)
	}
}

func TestRateLimit_SetsLimitHeader(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 50, BurstSize: 100})
	c, rec := newTestContext(http.MethodGet, "/")

	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "50" {
		t.Errorf("X-RateLimit-Limit = %q, want 50", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	if err := SecurityHeaders()(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestRequestTimeout_AllowsFastHandler(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")

	err := RequestTimeout(time.Second)(okHandler)(c)
	if err != nil {
		t.Fatalf("expected fast handler to succeed, got %v", err)
	}
}

func TestRequestTimeout_CancelsSlowHandler(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	err := RequestTimeout(10 * time.Millisecond)(func(c echo.Context) error {
		select {
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		case <-time.After(time.Second):
			return okHandler(c)
		}
	})(c)

	if err != nil {
		t.Fatalf("expected timeout response to be written, got error %v", err)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
}
