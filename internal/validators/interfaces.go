// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary request values.
//
// Usage patterns:
//  1. Implement Validator to encode request-specific rules.
//  2. Inject Validator implementations into service decorators.
//  3. Call Validate with context and value before running business logic.
//
// Field rules are expressed with github.com/go-ozzo/ozzo-validation; a
// failed rule set is returned as validation.Errors keyed by JSON field name.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate reports the first set of rule violations found in the input,
	// or [ErrUnsupportedType] when no rules exist for its type.
	Validate(ctx context.Context, obj any) error
}
