package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-user-auth/internal/config"
	"github.com/MKhiriev/go-user-auth/internal/utils"
	"github.com/MKhiriev/go-user-auth/models"
)

// jwtCodec is the HS256 implementation of [TokenCodec]. It holds only
// immutable state and is safe for concurrent use.
type jwtCodec struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey string

	// issuer is the "iss" claim embedded in every issued token. Tokens whose
	// issuer does not match are rejected.
	issuer string

	// duration controls how long a newly issued token remains valid.
	duration time.Duration
}

// NewTokenCodec constructs a [TokenCodec] from the application config.
// A missing sign key or issuer is a configuration error.
func NewTokenCodec(cfg config.App) (TokenCodec, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrTokenSignKeyIsNotSpecified
	}
	if cfg.TokenIssuer == "" {
		return nil, ErrTokenIssuerIsNotSpecified
	}

	return &jwtCodec{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: models.SessionDuration,
	}, nil
}

// Issue signs a token for userID valid from now for [models.SessionDuration].
func (c *jwtCodec) Issue(userID int64, now time.Time) (models.Token, error) {
	token, err := utils.GenerateJWTToken(c.issuer, userID, now, c.duration, c.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify returns the user ID carried by token if it is authentic and not
// expired at now.
//
// An authentic token past its expiry yields [ErrTokenIsExpired]; every other
// failure (signature, algorithm, issuer, malformed input, bad subject) is
// normalised to [ErrTokenIsInvalid].
func (c *jwtCodec) Verify(token string, now time.Time) (int64, error) {
	userID, err := utils.ValidateAndParseJWTToken(token, c.signKey, c.issuer, now)
	switch {
	case err == nil:
		return userID, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, fmt.Errorf("%w: %w", ErrTokenIsExpired, err)
	default:
		return 0, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}
}
