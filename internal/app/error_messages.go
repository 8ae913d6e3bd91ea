// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-user-auth HTTP handlers and middleware.
//
// All Msg* constants are human-readable strings written into HTTP response
// bodies. Keeping them in one place keeps the wording of the API consistent.
package app

const (
	// MsgRegistrationSuccessful accompanies the public view of a newly
	// registered user.
	MsgRegistrationSuccessful = "Registration successful"

	// MsgLoginSuccessful accompanies the session cookie issued on login.
	MsgLoginSuccessful = "Login successful"

	// MsgPasswordChanged is returned after the stored password hash was
	// replaced.
	MsgPasswordChanged = "Password changed successfully"

	// MsgLoggedOut is returned together with the cleared session cookie.
	MsgLoggedOut = "Logged out successfully"

	// MsgInvalidJSON is returned when the request body is empty or is not a
	// single JSON document.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDataProvided prefixes validation failures of a decoded
	// request.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is returned for every failed login, whatever the
	// underlying reason.
	MsgInvalidCredentials = "invalid username or password"

	// MsgRegistrationFailed is returned when the username or email is taken.
	MsgRegistrationFailed = "registration failed"

	// MsgUnauthorized is the body of every request rejected by the
	// authentication middleware and of failed password changes.
	MsgUnauthorized = "unauthorized"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
