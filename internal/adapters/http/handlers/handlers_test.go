package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/teapot-service/internal/app"
	"github.com/jsamuelsen/teapot-service/internal/domain"
	"github.com/jsamuelsen/teapot-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fixedStore always serves the same quote.
type fixedStore struct {
	quote domain.Quote
}

func (s fixedStore) RandomQuote() domain.Quote { return s.quote }

func (s fixedStore) Quotes() domain.QuoteList {
	list, _ := domain.NewQuoteList([]string{s.quote.String()})
	return list
}

// namedChecker is a health checker with a canned result.
type namedChecker struct {
	name string
	err  error
}

func (c namedChecker) Name() string                { return c.name }
func (c namedChecker) Check(context.Context) error { return c.err }

func newTeapotHandler(quote string) *TeapotHandler {
	svc := app.NewQuoteService(app.QuoteServiceConfig{
		Store:  fixedStore{quote: domain.Quote(quote)},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return NewTeapotHandler(svc, "v4.1.8")
}

func serve(h gin.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	h(c)
	return w
}

func TestDocsText(t *testing.T) {
	expected := "Teapot-as-a-Service v4.1.8\n\nEndpoints:\n" +
		"- GET /teapot (returns random teapot quote, status 418)\n" +
		"- GET /health\n" +
		"- GET / and GET /docs"

	assert.Equal(t, expected, DocsText("v4.1.8"))
}

func TestTeapotHandler_Health(t *testing.T) {
	h := newTeapotHandler("I'm a little teapot")

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			w := serve(h.Health, method, "/health")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"status":"healthy","version":"v4.1.8"}`, w.Body.String())
		})
	}
}

func TestTeapotHandler_Docs(t *testing.T) {
	h := newTeapotHandler("I'm a little teapot")

	w := serve(h.Docs, http.MethodPut, "/docs")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, DocsText("v4.1.8"), w.Body.String())
}

func TestTeapotHandler_Teapot(t *testing.T) {
	h := newTeapotHandler("100% tea, 0% coffee")

	w := serve(h.Teapot, http.MethodGet, "/teapot")

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "100% tea, 0% coffee", w.Body.String())
}

func TestTeapotHandler_TeapotWrongMethod(t *testing.T) {
	h := newTeapotHandler("I'm a little teapot")

	for _, method := range []string{http.MethodPost, http.MethodHead, http.MethodPatch, "BREW"} {
		t.Run(method, func(t *testing.T) {
			w := serve(h.Teapot, method, "/teapot")

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, "GET", w.Header().Get("Allow"))
			if method != http.MethodHead {
				assert.Equal(t, "Method Not Allowed", w.Body.String())
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	w := serve(NotFound, http.MethodGet, "/coffee")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", w.Body.String())
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("v4.1.8", "abc123", "2024-01-15T10:00:00Z")

	assert.Equal(t, "v4.1.8", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2024-01-15T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestAdminHandler_Liveness(t *testing.T) {
	h := NewAdminHandler(ports.NewHealthRegistry(), prometheus.NewRegistry(), BuildInfo{})

	w := serve(h.Liveness, http.MethodGet, "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAdminHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []ports.HealthChecker
		wantCode   int
		wantStatus string
	}{
		{
			name:       "no checkers",
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name:       "all healthy",
			checkers:   []ports.HealthChecker{namedChecker{name: "quotes"}},
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name: "one unhealthy",
			checkers: []ports.HealthChecker{
				namedChecker{name: "quotes"},
				namedChecker{name: "kettle", err: errors.New("cold")},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := ports.NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}
			h := NewAdminHandler(registry, nil, BuildInfo{})

			w := serve(h.Readiness, http.MethodGet, "/-/ready")

			assert.Equal(t, tt.wantCode, w.Code)

			var resp readinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Len(t, resp.Checks, len(tt.checkers))
		})
	}
}

func TestAdminHandler_Build(t *testing.T) {
	h := NewAdminHandler(ports.NewHealthRegistry(), nil, NewBuildInfo("v4.1.8", "abc123", "now"))

	w := serve(h.Build, http.MethodGet, "/-/build")

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "v4.1.8", resp.Version)
	assert.Equal(t, "abc123", resp.Commit)
	assert.Equal(t, runtime.Version(), resp.GoVersion)
}

func TestAdminHandler_RegisterRoutes(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "teapot_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	h := NewAdminHandler(ports.NewHealthRegistry(), registry, BuildInfo{})

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/-"))

	for _, path := range []string{"/-/live", "/-/ready", "/-/build", "/-/metrics"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/metrics", nil))
	assert.Contains(t, w.Body.String(), "teapot_test_total 1")
}
