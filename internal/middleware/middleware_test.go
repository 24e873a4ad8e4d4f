package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apierrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/shared/testutil"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func TestRequestID(t *testing.T) {
	var seenReqID, seenTraceID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenReqID = GetReqID(r.Context())
		seenTraceID = infrastructure.GetTraceID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seenReqID, 36)
		assert.Equal(t, seenReqID, seenTraceID)
		assert.Equal(t, seenReqID, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "client-id", seenReqID)
		assert.Equal(t, "client-id", w.Header().Get(RequestIDHeader))
	})
}

func TestStructuredLogger(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := RequestID(StructuredLogger(logger)(http.HandlerFunc(okHandler)))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats?city=chicago", nil))

	assert.True(t, logs.ContainsMessage("request completed"))
	assert.True(t, logs.ContainsAttr("status", int64(200)))
	assert.True(t, logs.ContainsAttr("query", "city=chicago"))
}

func TestRecoverer(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/errors/internal", body["type"])
	assert.True(t, logs.ContainsMessage("panic recovered"))
}

func TestRateLimiter(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	limiter := NewRateLimiter(0.001, 2, logger)
	handler := limiter.Handler(http.HandlerFunc(okHandler))

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.True(t, logs.ContainsMessage("rate limit exceeded"))
}

func TestTimeout(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	t.Run("handler honours deadline", func(t *testing.T) {
		handler := Timeout(20*time.Millisecond, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
		assert.Contains(t, w.Body.String(), "/errors/timeout")
	})

	t.Run("fast handler untouched", func(t *testing.T) {
		handler := Timeout(time.Second, logger)(http.HandlerFunc(okHandler))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestTelemetry_SpanUsesRoutePattern(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := chi.NewRouter()
	r.Use(Telemetry(tp.Tracer("test"), nil))
	r.Get("/api/stats/{section}", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats/time", nil))
	require.Equal(t, http.StatusOK, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/stats/{section}", spans[0].Name())
}

type statsParams struct {
	City   string `json:"city" validate:"required"`
	Offset int    `json:"offset" validate:"min=0"`
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

func TestValidator_ValidateStruct(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateStruct(statsParams{City: "chicago"}))

	err := v.ValidateStruct(statsParams{City: "chicago", Offset: -1, Format: "pdf"})
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	require.Len(t, apiErr.Fields, 2)
	assert.Equal(t, "offset", apiErr.Fields[0].Field)
	assert.Equal(t, "offset must be at least 0", apiErr.Fields[0].Message)
	assert.Equal(t, "format must be one of: csv, xlsx", apiErr.Fields[1].Message)

	err = v.ValidateStruct(statsParams{})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "city is required", apiErr.Fields[0].Message)
}

func TestQueryParamValidator_ValidateInt(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewQueryParamValidator(logger, apierrors.NewErrorHandler(logger, false))

	tests := []struct {
		query    string
		want     int
		wantOK   bool
		wantCode int
	}{
		{"", 0, true, http.StatusOK},
		{"offset=10", 10, true, http.StatusOK},
		{"offset=ten", 0, false, http.StatusBadRequest},
		{"offset=-5", 0, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			got, ok := v.ValidateInt(w, httptest.NewRequest(http.MethodGet, "/api/rows?"+tt.query, nil), "offset", 0, 1<<30, 0)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
