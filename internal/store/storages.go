package store

import "github.com/MKhiriev/go-user-auth/internal/logger"

// Storages groups the repositories built on one database connection.
type Storages struct {
	UserRepository UserRepository
	RoleRepository RoleRepository
}

// NewStorages constructs all repositories on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
		RoleRepository: NewRoleRepository(db, log),
	}
}
