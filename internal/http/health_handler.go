package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"panorama/internal/snapshots"
)

// HealthStatus represents the health check response
type HealthStatus struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// HealthHandler serves the health check endpoint.
type HealthHandler struct {
	store *snapshots.Store
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(store *snapshots.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Get handles the health check endpoint
func (h *HealthHandler) Get(c *fiber.Ctx) error {
	return c.JSON(HealthStatus{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		RefreshedAt: h.store.RefreshedAt(),
	})
}
