package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-user-auth/models"
)

// ErrInvalidJWTParams is returned by [GenerateJWTToken] when a required
// argument is empty or zero.
var ErrInvalidJWTParams = errors.New("invalid params for generating JWT token")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token issued at now.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a decimal string
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("my-service", 42, time.Now(), 2*time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, now time.Time, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, ErrInvalidJWTParams
	}

	issuedAt := now.Truncate(time.Second)
	expiresAt := issuedAt.Add(tokenDuration)
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		UserID:       userID,
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
	}, nil
}

// ValidateAndParseJWTToken verifies tokenString as of now and returns the
// user ID carried in its subject.
//
// Validation order:
//   - algorithm must be HS256 and the signature must match tokenSignKey
//   - iss must equal tokenIssuer
//   - exp must be present and strictly after now
//   - sub must be a decimal int64
//
// An expired token yields an error matching [jwt.ErrTokenExpired]; every
// other failure is wrapped as is.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, now time.Time) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return 0, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return 0, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error occurred during converting subject to user ID: %w", err)
	}

	return userID, nil
}
