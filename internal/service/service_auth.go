package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/store"
	"github.com/MKhiriev/go-user-auth/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, password changes and
// token-to-identity resolution on top of the user directory and role
// registry.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// roleRepository resolves the default role assigned at registration.
	roleRepository store.RoleRepository

	// hasher produces and checks password digests.
	hasher PasswordHasher

	// tokenCodec issues and verifies session tokens.
	tokenCodec TokenCodec

	// dummyHash is verified against when a login names an unknown user, so
	// that the response time does not reveal whether the username exists.
	// Computed on first use; a failed computation is retried by the next call.
	dummyHash   string
	dummyHashMu sync.Mutex

	// clock supplies updated_at for password changes.
	clock func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// repositories, hasher and token codec.
//
// The returned service is safe for concurrent use.
func NewAuthService(
	userRepository store.UserRepository,
	roleRepository store.RoleRepository,
	hasher PasswordHasher,
	tokenCodec TokenCodec,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		roleRepository: roleRepository,
		hasher:         hasher,
		tokenCodec:     tokenCodec,
		clock:          time.Now,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// The existence check is advisory; the unique constraints of the user
// directory decide concurrent registrations of the same username or email.
// The default role [models.RoleUser] is attached when the registry has it.
//
// Returns the public view of the stored user or:
//   - [ErrUserAlreadyExists] if the username or email is taken.
//   - a hashing error from [PasswordHasher.Hash].
//   - an [ErrInternal]-wrapped storage error.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	exists, err := a.userRepository.ExistsByUsernameOrEmail(ctx, request.Username, request.Email)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user existence check failed")
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if exists {
		log.Debug().Str("username", request.Username).Msg("username or email already taken")
		return models.PublicUser{}, ErrUserAlreadyExists
	}

	passwordHash, err := a.hasher.Hash(ctx, request.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.PublicUser{}, err
	}

	role, err := a.defaultRole(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}

	user, err := a.userRepository.Insert(ctx, models.User{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: passwordHash,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Company:      request.Company,
		Role:         role,
	})
	if errors.Is(err, store.ErrUserAlreadyExists) {
		log.Debug().Str("username", request.Username).Msg("username or email taken concurrently")
		return models.PublicUser{}, ErrUserAlreadyExists
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user.Public(), nil
}

// Login authenticates an existing user and issues a token as of now.
//
// An unknown username still costs one password verification. Both an
// unknown username and a wrong password return [ErrInvalidCredentials]; the
// wrapped cause ([ErrUserNotFound] or [ErrWrongPassword]) is for logs and
// tests only.
func (a *authService) Login(ctx context.Context, request models.LoginRequest, now time.Time) (models.PublicUser, models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByUsername(ctx, request.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		a.hasher.Verify(ctx, request.Password, a.getDummyHash(ctx))
		log.Debug().Str("username", request.Username).Msg("login attempt for unknown user")
		return models.PublicUser{}, models.Token{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrUserNotFound)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by username failed")
		return models.PublicUser{}, models.Token{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if !a.hasher.Verify(ctx, request.Password, user.PasswordHash) {
		log.Debug().Int64("user_id", user.ID).Msg("wrong password")
		return models.PublicUser{}, models.Token{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrWrongPassword)
	}

	token, err := a.tokenCodec.Issue(user.ID, now)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("token issuing failed")
		return models.PublicUser{}, models.Token{}, err
	}

	return user.Public(), token, nil
}

// GetAuthenticatedIdentity returns the public view of the user with userID
// or [ErrUserNotFound].
func (a *authService) GetAuthenticatedIdentity(ctx context.Context, userID int64) (models.PublicUser, error) {
	user, err := a.findUser(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}

	return user.Public(), nil
}

// ChangePassword checks request.OldPassword against the stored hash and
// replaces it with the hash of request.NewPassword. Existing tokens stay
// valid.
func (a *authService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := a.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !a.hasher.Verify(ctx, request.OldPassword, user.PasswordHash) {
		log.Debug().Int64("user_id", userID).Msg("old password does not match")
		return ErrWrongPassword
	}

	passwordHash, err := a.hasher.Hash(ctx, request.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password hashing failed")
		return err
	}

	err = a.userRepository.UpdatePasswordHash(ctx, userID, passwordHash, a.clock().UTC())
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password update failed")
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	log.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}

// Authenticate verifies token as of now and resolves its subject.
//
// Returns [ErrTokenIsExpired] or [ErrTokenIsInvalid] for unusable tokens and
// an [ErrUnauthorized]-wrapped [ErrUserNotFound] when the subject no longer
// exists. Storage failures are [ErrInternal].
func (a *authService) Authenticate(ctx context.Context, token string, now time.Time) (models.Identity, error) {
	userID, err := a.tokenCodec.Verify(token, now)
	if err != nil {
		return models.Identity{}, err
	}

	user, err := a.findUser(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if err != nil {
		return models.Identity{}, err
	}

	return models.Identity{UserID: user.ID, Role: user.RoleName()}, nil
}

func (a *authService) findUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.findUser").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, nil
}

// defaultRole returns the registry's "User" role, or nil when it has not
// been seeded.
func (a *authService) defaultRole(ctx context.Context) (*models.Role, error) {
	role, err := a.roleRepository.FindByName(ctx, models.RoleUser)
	if errors.Is(err, store.ErrRoleNotFound) {
		logger.FromContext(ctx).Warn().Str("role", models.RoleUser).Msg("default role is missing, registering user without role")
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.defaultRole").Msg("role lookup failed")
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return &role, nil
}

func (a *authService) getDummyHash(ctx context.Context) string {
	a.dummyHashMu.Lock()
	defer a.dummyHashMu.Unlock()

	if a.dummyHash != "" {
		return a.dummyHash
	}

	digest, err := a.hasher.Hash(context.WithoutCancel(ctx), uuid.NewString())
	if err != nil {
		a.logger.Err(err).Msg("could not compute dummy password hash")
		return ""
	}
	a.dummyHash = digest

	return a.dummyHash
}
