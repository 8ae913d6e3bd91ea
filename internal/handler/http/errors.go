// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware and the handlers it
// protects. They are logged, never written to response bodies.
var (
	// ErrNoSessionCookie is logged when a protected request carries no
	// session cookie or an empty one.
	ErrNoSessionCookie = errors.New("no session cookie")

	// ErrNoIdentityInContext is logged when a protected handler runs without
	// an identity placed by the authentication middleware.
	ErrNoIdentityInContext = errors.New("no identity in request context")
)
