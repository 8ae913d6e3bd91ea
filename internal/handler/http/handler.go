package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-user-auth/internal/config"
	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/service"
)

type Handler struct {
	services *service.Services
	cookies  *SessionCookieManager

	registry *prometheus.Registry
	metrics  *Metrics

	requestTimeout time.Duration

	// now is the clock used for token issuing and verification.
	now func() time.Time

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. Request metrics are registered in
// registry, which is also what GET /metrics exposes.
func NewHandler(services *service.Services, cfg config.StructuredConfig, registry *prometheus.Registry, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		cookies:        NewSessionCookieManager(cfg.App.CookieSecure),
		registry:       registry,
		metrics:        NewMetrics(registry),
		requestTimeout: cfg.Server.RequestTimeout,
		now:            time.Now,
		logger:         logger,
	}
}
