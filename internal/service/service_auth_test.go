package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/mock"
	"github.com/MKhiriev/go-user-auth/internal/store"
	"github.com/MKhiriev/go-user-auth/models"
)

type authMocks struct {
	users  *mock.MockUserRepository
	roles  *mock.MockRoleRepository
	hasher *mock.MockPasswordHasher
	codec  *mock.MockTokenCodec
}

// newTestAuthSvc builds an authService around gomock collaborators.
func newTestAuthSvc(t *testing.T) (*authService, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := authMocks{
		users:  mock.NewMockUserRepository(ctrl),
		roles:  mock.NewMockRoleRepository(ctrl),
		hasher: mock.NewMockPasswordHasher(ctrl),
		codec:  mock.NewMockTokenCodec(ctrl),
	}

	svc := NewAuthService(m.users, m.roles, m.hasher, m.codec, logger.Nop()).(*authService)
	svc.clock = func() time.Time { return t0 }

	return svc, m
}

func registerRequest() models.RegisterRequest {
	company := "Acme"
	return models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Company:  &company,
	}
}

var userRole = models.Role{ID: 2, Name: models.RoleUser, Code: "678AMSX"}

func storedUser() models.User {
	role := userRole
	return models.User{
		ID:           7,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "digest-of-secret1",
		Role:         &role,
		CreatedAt:    t0,
		UpdatedAt:    t0,
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := newTestAuthSvc(t)
	ctx := context.Background()
	req := registerRequest()

	gomock.InOrder(
		m.users.EXPECT().ExistsByUsernameOrEmail(ctx, "alice", "alice@example.com").Return(false, nil),
		m.hasher.EXPECT().Hash(ctx, "secret1").Return("digest-of-secret1", nil),
		m.roles.EXPECT().FindByName(ctx, models.RoleUser).Return(userRole, nil),
		m.users.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "alice", u.Username)
				assert.Equal(t, "digest-of-secret1", u.PasswordHash)
				assert.Equal(t, req.Company, u.Company)
				require.NotNil(t, u.Role)
				assert.Equal(t, userRole.ID, u.Role.ID)
				u.ID = 7
				return u, nil
			},
		),
	)

	user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice", user.Username)
	require.NotNil(t, user.Role)
	assert.Equal(t, models.RoleUser, user.Role.Name)
}

func TestAuthService_Register_WithoutDefaultRole(t *testing.T) {
	svc, m := newTestAuthSvc(t)
	ctx := context.Background()

	m.users.EXPECT().ExistsByUsernameOrEmail(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	m.hasher.EXPECT().Hash(ctx, gomock.Any()).Return("digest", nil)
	m.roles.EXPECT().FindByName(ctx, models.RoleUser).Return(models.Role{}, store.ErrRoleNotFound)
	m.users.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Nil(t, u.Role)
			u.ID = 1
			return u, nil
		},
	)

	user, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.Nil(t, user.Role)
}

func TestAuthService_Register_AlreadyExists(t *testing.T) {
	svc, m := newTestAuthSvc(t)
	ctx := context.Background()

	m.users.EXPECT().ExistsByUsernameOrEmail(ctx, gomock.Any(), gomock.Any()).Return(true, nil)

	_, err := svc.Register(ctx, registerRequest())
	require.ErrorIs(t, err, ErrUserAlreadyExists)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_LosesRaceOnInsert(t *testing.T) {
	svc, m := newTestAuthSvc(t)
	ctx := context.Background()

	m.users.EXPECT().ExistsByUsernameOrEmail(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	m.hasher.EXPECT().Hash(ctx, gomock.Any()).Return("digest", nil)
	m.roles.EXPECT().FindByName(ctx, gomock.Any()).Return(userRole, nil)
	m.users.EXPECT().Insert(ctx, gomock.Any()).Return(models.User{}, store.ErrUserAlreadyExists)

	_, err := svc.Register(ctx, registerRequest())
	require.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_StorageErrors(t *testing.T) {
	dbErr := errors.New("connection refused")

	t.Run("existence check", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.users.EXPECT().ExistsByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, dbErr)

		_, err := svc.Register(context.Background(), registerRequest())
		require.ErrorIs(t, err, ErrInternal)
		require.ErrorIs(t, err, dbErr)
	})

	t.Run("role lookup", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.users.EXPECT().ExistsByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("digest", nil)
		m.roles.EXPECT().FindByName(gomock.Any(), gomock.Any()).Return(models.Role{}, dbErr)

		_, err := svc.Register(context.Background(), registerRequest())
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("insert", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.users.EXPECT().ExistsByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("digest", nil)
		m.roles.EXPECT().FindByName(gomock.Any(), gomock.Any()).Return(userRole, nil)
		m.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

		_, err := svc.Register(context.Background(), registerRequest())
		require.ErrorIs(t, err, ErrInternal)
		assert.NotErrorIs(t, err, ErrConflict)
	})
}

func TestAuthService_Register_HashError(t *testing.T) {
	svc, m := newTestAuthSvc(t)

	m.users.EXPECT().ExistsByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("", ErrPasswordTooLong)

	_, err := svc.Register(context.Background(), registerRequest())
	require.ErrorIs(t, err, ErrValidation)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	svc, m := newTestAuthSvc(t)
	ctx := context.Background()
	token := models.Token{SignedString: "signed", UserID: 7, IssuedAt: t0, ExpiresAt: t0.Add(models.SessionDuration)}

	gomock.InOrder(
		m.users.EXPECT().FindByUsername(ctx, "alice").Return(storedUser(), nil),
		m.hasher.EXPECT().Verify(ctx, "secret1", "digest-of-secret1").Return(true),
		m.codec.EXPECT().Issue(int64(7), t0).Return(token, nil),
	)

	user, gotToken, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret1"}, t0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, token, gotToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, m := newTestAuthSvc(t)

	m.users.EXPECT().FindByUsername(gomock.Any(), "alice").Return(storedUser(), nil)
	m.hasher.EXPECT().Verify(gomock.Any(), "wrong", "digest-of-secret1").Return(false)

	_, token, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"}, t0)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.ErrorIs(t, err, ErrWrongPassword)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, token.SignedString)
}

func TestAuthService_Login_UnknownUserStillVerifies(t *testing.T) {
	svc, m := newTestAuthSvc(t)

	m.users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrUserNotFound).Times(2)
	// the dummy digest is computed once and reused
	m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("dummy-digest", nil).Times(1)
	m.hasher.EXPECT().Verify(gomock.Any(), "whatever", "dummy-digest").Return(false).Times(2)

	for range 2 {
		_, _, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "whatever"}, t0)
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.ErrorIs(t, err, ErrUserNotFound)
		require.ErrorIs(t, err, ErrUnauthorized)
	}
}

func TestAuthService_Login_DummyHashRetriedAfterFailure(t *testing.T) {
	svc, m := newTestAuthSvc(t)
	login := models.LoginRequest{Username: "ghost", Password: "whatever"}

	m.users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrUserNotFound).Times(3)
	gomock.InOrder(
		m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("", ErrPasswordHashingFailed),
		m.hasher.EXPECT().Verify(gomock.Any(), "whatever", "").Return(false),
		m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("dummy-digest", nil),
		m.hasher.EXPECT().Verify(gomock.Any(), "whatever", "dummy-digest").Return(false).Times(2),
	)

	for range 3 {
		_, _, err := svc.Login(context.Background(), login, t0)
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.ErrorIs(t, err, ErrUserNotFound)
	}
	assert.Equal(t, "dummy-digest", svc.dummyHash)
}

func TestAuthService_Login_StorageError(t *testing.T) {
	svc, m := newTestAuthSvc(t)

	m.users.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, errors.New("db down"))

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret1"}, t0)
	require.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Login_TokenError(t *testing.T) {
	svc, m := newTestAuthSvc(t)

	m.users.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Return(storedUser(), nil)
	m.hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
	m.codec.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(models.Token{}, ErrTokenCreationFailed)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret1"}, t0)
	require.ErrorIs(t, err, ErrInternal)
}

// ── GetAuthenticatedIdentity ─────────────────────────────────────────────────

func TestAuthService_GetAuthenticatedIdentity(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(storedUser(), nil)

		user, err := svc.GetAuthenticatedIdentity(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("missing", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(models.User{}, store.ErrUserNotFound)

		_, err := svc.GetAuthenticatedIdentity(context.Background(), 7)
		require.ErrorIs(t, err, ErrUserNotFound)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("storage error", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(models.User{}, store.ErrExecutingQuery)

		_, err := svc.GetAuthenticatedIdentity(context.Background(), 7)
		require.ErrorIs(t, err, ErrInternal)
	})
}

// ── ChangePassword ───────────────────────────────────────────────────────────

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, m := newTestAuthSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		m.users.EXPECT().FindByID(ctx, int64(7)).Return(storedUser(), nil),
		m.hasher.EXPECT().Verify(ctx, "secret1", "digest-of-secret1").Return(true),
		m.hasher.EXPECT().Hash(ctx, "secret2").Return("digest-of-secret2", nil),
		m.users.EXPECT().UpdatePasswordHash(ctx, int64(7), "digest-of-secret2", t0).Return(nil),
	)

	err := svc.ChangePassword(ctx, 7, models.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"})
	require.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, m := newTestAuthSvc(t)

	m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(storedUser(), nil)
	m.hasher.EXPECT().Verify(gomock.Any(), "nope", gomock.Any()).Return(false)

	err := svc.ChangePassword(context.Background(), 7, models.ChangePasswordRequest{OldPassword: "nope", NewPassword: "secret2"})
	require.ErrorIs(t, err, ErrWrongPassword)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_ChangePassword_UserVanished(t *testing.T) {
	svc, m := newTestAuthSvc(t)

	m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(storedUser(), nil)
	m.hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
	m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("digest", nil)
	m.users.EXPECT().UpdatePasswordHash(gomock.Any(), int64(7), "digest", t0).Return(store.ErrUserNotFound)

	err := svc.ChangePassword(context.Background(), 7, models.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ChangePassword_UnknownUser(t *testing.T) {
	svc, m := newTestAuthSvc(t)

	m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(models.User{}, store.ErrUserNotFound)

	err := svc.ChangePassword(context.Background(), 7, models.ChangePasswordRequest{OldPassword: "a", NewPassword: "secret2"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("valid token of existing user", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.codec.EXPECT().Verify("signed", t0).Return(int64(7), nil)
		m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(storedUser(), nil)

		identity, err := svc.Authenticate(context.Background(), "signed", t0)
		require.NoError(t, err)
		assert.Equal(t, models.Identity{UserID: 7, Role: models.RoleUser}, identity)
	})

	t.Run("expired token", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.codec.EXPECT().Verify("signed", t0).Return(int64(0), ErrTokenIsExpired)

		_, err := svc.Authenticate(context.Background(), "signed", t0)
		require.ErrorIs(t, err, ErrTokenIsExpired)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.codec.EXPECT().Verify("forged", t0).Return(int64(0), ErrTokenIsInvalid)

		_, err := svc.Authenticate(context.Background(), "forged", t0)
		require.ErrorIs(t, err, ErrTokenIsInvalid)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.codec.EXPECT().Verify("signed", t0).Return(int64(7), nil)
		m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(models.User{}, store.ErrUserNotFound)

		_, err := svc.Authenticate(context.Background(), "signed", t0)
		require.ErrorIs(t, err, ErrUnauthorized)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, m := newTestAuthSvc(t)
		m.codec.EXPECT().Verify("signed", t0).Return(int64(7), nil)
		m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(models.User{}, store.ErrExecutingQuery)

		_, err := svc.Authenticate(context.Background(), "signed", t0)
		require.ErrorIs(t, err, ErrInternal)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})
}
