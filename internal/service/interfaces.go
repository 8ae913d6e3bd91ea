package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService is the authentication core consumed by the HTTP layer.
type AuthService interface {
	// Register creates an account and returns its public view.
	Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error)
	// Login verifies credentials as of now and issues a session token.
	Login(ctx context.Context, request models.LoginRequest, now time.Time) (models.PublicUser, models.Token, error)
	// GetAuthenticatedIdentity returns the public view of user userID.
	GetAuthenticatedIdentity(ctx context.Context, userID int64) (models.PublicUser, error)
	// ChangePassword replaces the password of userID after checking the old one.
	ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error
	// Authenticate resolves a session token to the identity of an existing user.
	Authenticate(ctx context.Context, token string, now time.Time) (models.Identity, error)
}

// PasswordHasher produces and checks one-way password digests.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify never fails: a malformed digest, a mismatch and a cancelled
	// context all report false.
	Verify(ctx context.Context, plaintext, digest string) bool
}

// TokenCodec issues and verifies signed session tokens.
type TokenCodec interface {
	Issue(userID int64, now time.Time) (models.Token, error)
	Verify(token string, now time.Time) (int64, error)
}

// RoleSeeder makes sure the built-in roles exist.
type RoleSeeder interface {
	Seed(ctx context.Context) error
}

// AppInfoService reports build information of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
