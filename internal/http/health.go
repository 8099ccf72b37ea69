package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/config"
)

const (
	healthOK       = "ok"
	healthDegraded = "degraded" // store reachable, catalog queries failing
	healthDown     = "down"     // store unreachable
)

// StorePinger is the database handle probed by /health.
type StorePinger interface {
	Ping(ctx context.Context) error
	Driver() config.DatabaseDriver
}

// CatalogTotals mirrors catalog.HomeCounts for the health payload.
type CatalogTotals struct {
	Books           int64 `json:"books"`
	Copies          int64 `json:"copies"`
	AvailableCopies int64 `json:"available_copies"`
	Authors         int64 `json:"authors"`
	Genres          int64 `json:"genres"`
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Version   string         `json:"version,omitempty"`
	Driver    string         `json:"driver,omitempty"`
	Store     string         `json:"store"`
	Catalog   *CatalogTotals `json:"catalog,omitempty"`
	Error     string         `json:"error,omitempty"`
	CheckedAt time.Time      `json:"checked_at"`
}

type HealthController struct {
	store   StorePinger
	catalog HomeService
	version string
}

// NewHealthController probes store connectivity and then reads the catalog
// totals through svc. Either may be nil when not configured.
func NewHealthController(store StorePinger, svc HomeService, version string) *HealthController {
	return &HealthController{store: store, catalog: svc, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	ctx := c.Request.Context()
	resp := HealthResponse{
		Status:    healthOK,
		Version:   h.version,
		Store:     "not configured",
		CheckedAt: time.Now().UTC(),
	}

	if h.store != nil {
		resp.Driver = string(h.store.Driver())
		if err := h.store.Ping(ctx); err != nil {
			resp.Status = healthDown
			resp.Store = "unreachable"
			resp.Error = err.Error()
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp.Store = "reachable"
	}

	if h.catalog != nil {
		counts, err := h.catalog.Counts(ctx)
		if err != nil {
			requestLogger(c).Warn().Err(err).Msg("Health check could not read catalog totals")
			resp.Status = healthDegraded
			resp.Error = err.Error()
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp.Catalog = &CatalogTotals{
			Books:           counts.Books,
			Copies:          counts.BookInstances,
			AvailableCopies: counts.AvailableInstances,
			Authors:         counts.Authors,
			Genres:          counts.Genres,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Ping answers without touching the store.
func (h *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
