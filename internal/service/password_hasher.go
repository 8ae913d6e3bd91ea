package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/workers"
)

// maxPasswordBytes is the longest plaintext bcrypt takes into account.
const maxPasswordBytes = 72

// bcryptHasher implements [PasswordHasher] with bcrypt. Every hash and
// compare is executed on the shared worker pool so that the number of
// concurrent bcrypt computations never exceeds the pool size.
type bcryptHasher struct {
	cost   int
	pool   *workers.Pool
	logger *logger.Logger
}

// NewPasswordHasher constructs a bcrypt [PasswordHasher]. A cost outside
// bcrypt's accepted range falls back to [bcrypt.DefaultCost].
func NewPasswordHasher(cost int, pool *workers.Pool, logger *logger.Logger) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{
		cost:   cost,
		pool:   pool,
		logger: logger,
	}
}

// Hash returns the bcrypt digest of plaintext.
//
// Errors:
//   - [ErrEmptyPassword] for an empty plaintext
//   - [ErrPasswordTooLong] for plaintexts over 72 bytes
//   - [ErrPasswordHashingFailed] when ctx ends or the pool is stopped
func (h *bcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	var (
		digest  []byte
		hashErr error
	)
	if err := h.pool.Do(ctx, func() {
		digest, hashErr = bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	}); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*bcryptHasher.Hash").Msg("hashing job was not completed")
		return "", fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	if errors.Is(hashErr, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if hashErr != nil {
		return "", fmt.Errorf("%w: %w", ErrPasswordHashingFailed, hashErr)
	}

	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Plaintexts longer than
// [maxPasswordBytes] never match, since bcrypt would compare only their prefix.
func (h *bcryptHasher) Verify(ctx context.Context, plaintext, digest string) bool {
	if len(plaintext) > maxPasswordBytes {
		return false
	}

	var compareErr error
	if err := h.pool.Do(ctx, func() {
		compareErr = bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	}); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*bcryptHasher.Verify").Msg("verification job was not completed")
		return false
	}

	return compareErr == nil
}
