package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctreport/internal/config"
	"ctreport/internal/infrastructure"
	renderpdf "ctreport/internal/render"
	"ctreport/internal/services"
)

// newTestApplication wires an application without touching the
// environment, config files or the global logger.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{}, logger)
	require.NoError(t, err)

	app := &Application{
		Config:        config.Default(),
		Logger:        logger,
		OTelProviders: providers,
	}

	renderer := renderpdf.NewPDFRenderer(renderpdf.DefaultOptions(), logger)
	app.ReportService = services.NewReportService(logger, renderer, nil, 0)
	app.HealthService = services.NewHealthService(logger)

	app.setupRouter()
	app.createServer()
	return app
}

func TestHealthzRoute(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestUnknownRouteIsProblemJSON(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "json")
	assert.Contains(t, rec.Body.String(), "/errors/not-found")
}

func TestAnalyzeRouteRejectsGet(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServerConfiguration(t *testing.T) {
	app := newTestApplication(t)

	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)
	assert.NotNil(t, app.Server.Handler)
}
