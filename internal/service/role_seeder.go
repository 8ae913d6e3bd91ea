package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/store"
	"github.com/MKhiriev/go-user-auth/models"
)

// BuiltinRoles are created by [RoleSeeder.Seed] when missing.
var BuiltinRoles = []models.Role{
	{Name: models.RoleAdmin, Code: "654NGHE", Description: strPtr("Full access to user management")},
	{Name: models.RoleUser, Code: "678AMSX", Description: strPtr("Default role of registered users")},
}

type roleSeeder struct {
	roleRepository store.RoleRepository
	logger         *logger.Logger
}

// NewRoleSeeder constructs a [RoleSeeder] writing through roleRepository.
func NewRoleSeeder(roleRepository store.RoleRepository, logger *logger.Logger) RoleSeeder {
	return &roleSeeder{
		roleRepository: roleRepository,
		logger:         logger,
	}
}

// Seed inserts every role of [BuiltinRoles] that does not exist yet.
// Concurrent or repeated runs leave exactly one row per role name.
func (s *roleSeeder) Seed(ctx context.Context) error {
	for _, role := range BuiltinRoles {
		inserted, err := s.roleRepository.InsertIfAbsent(ctx, role)
		if err != nil {
			s.logger.Err(err).Str("role", role.Name).Msg("role seeding failed")
			return fmt.Errorf("%w: seeding role %q: %w", ErrInternal, role.Name, err)
		}
		if inserted {
			s.logger.Info().Str("role", role.Name).Msg("role created")
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
