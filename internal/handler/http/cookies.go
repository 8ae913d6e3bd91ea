// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-user-auth/models"
)

// SessionCookieName is the name of the cookie carrying the session token.
const SessionCookieName = "token"

// SessionCookieManager writes and reads the session cookie. The cookie is
// HttpOnly, SameSite=Strict, scoped to "/" and lives as long as the token.
type SessionCookieManager struct {
	secure bool
}

// NewSessionCookieManager returns a manager that sets the Secure attribute
// when secure is true.
func NewSessionCookieManager(secure bool) *SessionCookieManager {
	return &SessionCookieManager{secure: secure}
}

// Attach sets the session cookie to token.
func (m *SessionCookieManager) Attach(w http.ResponseWriter, token models.Token) {
	cookie := m.cookie(token.SignedString)
	cookie.MaxAge = int(models.SessionDuration / time.Second)
	if !token.ExpiresAt.IsZero() {
		cookie.Expires = token.ExpiresAt.UTC()
	}

	http.SetCookie(w, cookie)
}

// Clear instructs the client to drop the session cookie.
func (m *SessionCookieManager) Clear(w http.ResponseWriter) {
	cookie := m.cookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0).UTC()

	http.SetCookie(w, cookie)
}

// FromRequest returns the session token of r. An empty cookie counts as
// absent.
func (m *SessionCookieManager) FromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

func (m *SessionCookieManager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
