package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the user directory consumed by the authentication core.
type UserRepository interface {
	// FindByUsername returns the user with the given username, its role
	// joined, or [ErrUserNotFound].
	FindByUsername(ctx context.Context, username string) (models.User, error)
	// FindByEmail returns the user with the given email or [ErrUserNotFound].
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// FindByID returns the user with the given id or [ErrUserNotFound].
	FindByID(ctx context.Context, id int64) (models.User, error)
	// ExistsByUsernameOrEmail reports whether any user holds username or email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Insert stores a new user and returns it with ID and timestamps set.
	// A uniqueness violation yields [ErrUserAlreadyExists].
	Insert(ctx context.Context, user models.User) (models.User, error)
	// UpdatePasswordHash replaces the stored hash of user id.
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error
}

// RoleRepository is the role registry.
type RoleRepository interface {
	// FindByName returns the role with the given name or [ErrRoleNotFound].
	FindByName(ctx context.Context, name string) (models.Role, error)
	// InsertIfAbsent stores role unless a role with the same name exists and
	// reports whether a row was inserted.
	InsertIfAbsent(ctx context.Context, role models.Role) (bool, error)
	// List returns all roles ordered by id.
	List(ctx context.Context) ([]models.Role, error)
}
