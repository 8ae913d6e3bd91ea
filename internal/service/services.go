package service

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-user-auth/internal/config"
	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/store"
	"github.com/MKhiriev/go-user-auth/internal/workers"
	"github.com/MKhiriev/go-user-auth/models"
)

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validating or metrics.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}

type Services struct {
	AuthService    AuthService
	RoleSeeder     RoleSeeder
	AppInfoService AppInfoService
}

// NewServices wires the services on top of storages.
//
// AuthService is decorated so that requests are validated first and every
// outcome, validation failures included, is counted on reg.
func NewServices(
	storages *store.Storages,
	cfg config.StructuredConfig,
	pool *workers.Pool,
	buildInfo models.AppBuildInfo,
	reg prometheus.Registerer,
	logger *logger.Logger,
) (*Services, error) {
	tokenCodec, err := NewTokenCodec(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("error creating token codec: %w", err)
	}

	hasher := NewPasswordHasher(cfg.App.PasswordHashCost, pool, logger)

	var authService AuthService = NewAuthService(storages.UserRepository, storages.RoleRepository, hasher, tokenCodec, logger)
	authService = NewAuthValidationService().Wrap(authService)
	authService = NewAuthMetricsService(reg).Wrap(authService)

	return &Services{
		AuthService:    authService,
		RoleSeeder:     NewRoleSeeder(storages.RoleRepository, logger),
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}, nil
}
