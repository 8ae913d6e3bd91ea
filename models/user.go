// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// It carries the stored password hash and must never be written to a client
// directly; use [User.Public] to obtain the outward view.
type User struct {
	// ID is the database-assigned identifier of the user. Immutable.
	ID int64

	// Username is the unique login name (3 to 30 characters).
	Username string

	// Email is the unique e-mail address of the user.
	Email string

	// PasswordHash is the bcrypt digest of the user's password.
	PasswordHash string

	// FirstName, LastName and Company are optional profile fields.
	FirstName *string
	LastName  *string
	Company   *string

	// Role is the role assigned to the user, nil when none is assigned.
	Role *Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the redacted view of [User] returned by public operations.
// It has no password hash field.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Role      *Role     `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the redacted view of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Company:   u.Company,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RoleName returns the name of the user's role or an empty string when the
// user has no role.
func (u User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
