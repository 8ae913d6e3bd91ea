package models

import "time"

// SessionDuration is the lifetime of an issued token and of the session
// cookie carrying it.
const SessionDuration = 2 * time.Hour

// Token is a signed bearer token issued after a successful login.
//
// Tokens are never persisted on the server side; validity is established
// solely by the signature and the expiry time.
type Token struct {
	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the subject the token was issued for.
	UserID int64 `json:"-"`

	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
