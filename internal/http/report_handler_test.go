package http_test

import (
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "panorama/internal/http"
	"panorama/internal/report"
	"panorama/internal/snapshots"
	"panorama/internal/source"
	"panorama/internal/testsupport"
)

func newTestApp(store *snapshots.Store) *fiber.App {
	mock := source.NewMockAt(testsupport.FixedClock(time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC)))
	handler := apihttp.NewHandler(store, mock, testsupport.NewTestLogger())
	health := apihttp.NewHealthHandler(store)

	app := fiber.New()
	app.Get("/health", health.Get)
	app.Get("/api/v1/report", handler.GetReport)
	app.Get("/api/v1/systems/:key", handler.GetSystemDetail)
	app.Get("/api/v1/systems/:key/kpis", handler.GetSystemKpis)
	app.Get("/api/v1/systems/:key/series", handler.GetSystemSeries)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path string) (*nethttp.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func TestGetReportNotReady(t *testing.T) {
	app := newTestApp(snapshots.NewStore())

	resp, body := doRequest(t, app, "/api/v1/report")

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "REPORT_NOT_READY", payload["code"])
}

func TestGetReport(t *testing.T) {
	store := snapshots.NewStore()
	store.SetReport(&report.Report{
		GeneratedAt: time.Now().UTC(),
		Systems:     []report.SystemSummary{{System: "crm", Name: "CRM"}},
	})
	app := newTestApp(store)

	resp, body := doRequest(t, app, "/api/v1/report")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var payload report.Report
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Systems, 1)
	assert.Equal(t, "crm", payload.Systems[0].System)
}

func TestGetSystemDetailUnknownSystem(t *testing.T) {
	app := newTestApp(snapshots.NewStore())

	resp, body := doRequest(t, app, "/api/v1/systems/erp")

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "SYSTEM_NOT_FOUND", payload["code"])
}

func TestGetSystemDetailNotRefreshedYet(t *testing.T) {
	app := newTestApp(snapshots.NewStore())

	resp, _ := doRequest(t, app, "/api/v1/systems/crm")

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetSystemDetail(t *testing.T) {
	store := snapshots.NewStore()
	store.SetSystem("crm", &report.SystemSummary{System: "crm", Name: "CRM"})
	app := newTestApp(store)

	resp, body := doRequest(t, app, "/api/v1/systems/crm")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var payload report.SystemSummary
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "CRM", payload.Name)
}

func TestGetSystemDetailFailedRefresh(t *testing.T) {
	// Detail views never substitute mock data; a failed refresh is an
	// explicit failed-to-load state.
	store := snapshots.NewStore()
	store.SetSystemError("crm", errors.New("upstream down"))
	app := newTestApp(store)

	resp, body := doRequest(t, app, "/api/v1/systems/crm")

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "SYSTEM_LOAD_FAILED", payload["code"])
	assert.Equal(t, "Failed to load system data", payload["error"])
}

func TestGetSystemKpis(t *testing.T) {
	app := newTestApp(snapshots.NewStore())

	resp, body := doRequest(t, app, "/api/v1/systems/finance/kpis")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var payload source.Kpis
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Values, 3)
}

func TestGetSystemSeries(t *testing.T) {
	app := newTestApp(snapshots.NewStore())

	resp, body := doRequest(t, app, "/api/v1/systems/whatsapp/series")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var payload source.Series
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Points, 14)
	assert.NotEmpty(t, payload.Label)
}

func TestGetSystemKpisUnknownSystem(t *testing.T) {
	app := newTestApp(snapshots.NewStore())

	resp, _ := doRequest(t, app, "/api/v1/systems/erp/kpis")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, "/api/v1/systems/erp/series")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	store := snapshots.NewStore()
	store.SetReport(&report.Report{})
	app := newTestApp(store)

	resp, body := doRequest(t, app, "/health")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var payload apihttp.HealthStatus
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.False(t, payload.RefreshedAt.IsZero())
}
