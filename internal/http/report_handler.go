// Package http exposes the derived summaries as a JSON API for the
// dashboard renderer.
package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"panorama/internal/snapshots"
	"panorama/internal/source"
	"panorama/internal/systems"
)

const (
	errReportNotReady = "Report not ready yet"
	errSystemNotFound = "System not found"
	errFailedToLoad   = "Failed to load system data"
)

// Handler serves report and detail payloads from the snapshot store and
// landing-card payloads straight from the (fallback-wrapped) data source.
type Handler struct {
	store  *snapshots.Store
	source source.DataSource
	logger *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(store *snapshots.Store, src source.DataSource, logger *slog.Logger) *Handler {
	return &Handler{store: store, source: src, logger: logger}
}

// GetReport serves the consolidated general report snapshot.
func (h *Handler) GetReport(c *fiber.Ctx) error {
	rep, ok := h.store.Report()
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": errReportNotReady,
			"code":  "REPORT_NOT_READY",
		})
	}
	return c.JSON(rep)
}

// GetSystemDetail serves the 30-day detail summary of one system. A system
// whose last refresh failed surfaces an explicit failed-to-load state
// instead of mock substitution: detail views promise real historical data.
func (h *Handler) GetSystemDetail(c *fiber.Ctx) error {
	key := c.Params("key")
	if _, ok := systems.ByKey(key); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": errSystemNotFound,
			"code":  "SYSTEM_NOT_FOUND",
		})
	}

	summary, err := h.store.System(key)
	if err != nil {
		h.logger.Warn("Serving failed-to-load state",
			slog.String("system", key), slog.Any("error", err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": errFailedToLoad,
			"code":  "SYSTEM_LOAD_FAILED",
		})
	}
	if summary == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": errReportNotReady,
			"code":  "REPORT_NOT_READY",
		})
	}
	return c.JSON(summary)
}

// GetSystemKpis serves the landing-card KPI payload. The fallback source
// guarantees a well-formed response even when the upstream is down.
func (h *Handler) GetSystemKpis(c *fiber.Ctx) error {
	key := c.Params("key")
	if _, ok := systems.ByKey(key); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": errSystemNotFound,
			"code":  "SYSTEM_NOT_FOUND",
		})
	}

	kpis, err := h.source.FetchKpis(c.Context(), key)
	if err != nil {
		h.logger.Error("KPI fetch failed past fallback",
			slog.String("system", key), slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": errFailedToLoad,
			"code":  "KPI_LOAD_FAILED",
		})
	}
	return c.JSON(kpis)
}

// GetSystemSeries serves the landing-card sparkline payload.
func (h *Handler) GetSystemSeries(c *fiber.Ctx) error {
	key := c.Params("key")
	if _, ok := systems.ByKey(key); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": errSystemNotFound,
			"code":  "SYSTEM_NOT_FOUND",
		})
	}

	series, err := h.source.FetchSeries(c.Context(), key)
	if err != nil {
		h.logger.Error("Series fetch failed past fallback",
			slog.String("system", key), slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": errFailedToLoad,
			"code":  "SERIES_LOAD_FAILED",
		})
	}
	return c.JSON(series)
}
