// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-auth/internal/config"
	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/models"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	ctx := context.Background()

	db, err := NewConnect(ctx, config.DB{DSN: ":memory:", Driver: config.DriverSQLite}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return NewStorages(db, logger.Nop())
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=1", sqliteDSN(":memory:"))
	assert.Equal(t, "file:test.db?cache=shared&_foreign_keys=1", sqliteDSN("file:test.db?cache=shared"))
	assert.Equal(t, "auth.db?_fk=0", sqliteDSN("auth.db?_fk=0"))
}

func TestNewConnect_UnsupportedDriver(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{DSN: "x", Driver: "oracle"}, logger.Nop())
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestSQLite_UserLifecycle(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	inserted, err := s.RoleRepository.InsertIfAbsent(ctx, models.Role{Name: models.RoleUser, Code: "USER"})
	require.NoError(t, err)
	require.True(t, inserted)

	role, err := s.RoleRepository.FindByName(ctx, models.RoleUser)
	require.NoError(t, err)

	company := "Acme"
	created, err := s.UserRepository.Insert(ctx, models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash-1",
		Company:      &company,
		Role:         &role,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byName, err := s.UserRepository.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, models.RoleUser, byName.RoleName())
	require.NotNil(t, byName.Company)
	assert.Equal(t, company, *byName.Company)
	assert.Nil(t, byName.FirstName)

	byEmail, err := s.UserRepository.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	exists, err := s.UserRepository.ExistsByUsernameOrEmail(ctx, "someone", "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.UserRepository.ExistsByUsernameOrEmail(ctx, "someone", "someone@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	later := created.UpdatedAt.Add(time.Minute)
	require.NoError(t, s.UserRepository.UpdatePasswordHash(ctx, created.ID, "hash-2", later))

	byID, err := s.UserRepository.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-2", byID.PasswordHash)
	assert.True(t, byID.UpdatedAt.After(byID.CreatedAt))

	require.ErrorIs(t, s.UserRepository.UpdatePasswordHash(ctx, created.ID+100, "h", later), ErrUserNotFound)

	_, err = s.UserRepository.FindByID(ctx, created.ID+100)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLite_UniqueUsernameAndEmail(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := s.UserRepository.Insert(ctx, models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = s.UserRepository.Insert(ctx, models.User{Username: "bob", Email: "other@example.com", PasswordHash: "h"})
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = s.UserRepository.Insert(ctx, models.User{Username: "bobby", Email: "bob@example.com", PasswordHash: "h"})
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSQLite_ConcurrentInsertsOfSameUsername(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.UserRepository.Insert(ctx, models.User{
				Username:     "racer",
				Email:        "racer" + string(rune('a'+i)) + "@example.com",
				PasswordHash: "h",
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrUserAlreadyExists):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestSQLite_InsertRoleIfAbsentIsIdempotent(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	for i, want := range []bool{true, false, false} {
		inserted, err := s.RoleRepository.InsertIfAbsent(ctx, models.Role{Name: models.RoleAdmin, Code: "ADMIN"})
		require.NoError(t, err, "attempt %d", i)
		assert.Equal(t, want, inserted, "attempt %d", i)
	}

	roles, err := s.RoleRepository.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, models.RoleAdmin, roles[0].Name)
}
