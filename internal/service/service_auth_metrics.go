// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-user-auth/models"
)

// Outcome label values of the auth_operations_total counter.
const (
	OutcomeSuccess      = "success"
	OutcomeValidation   = "validation"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// AuthMetricsService counts the outcome of every [AuthService] call.
type AuthMetricsService struct {
	inner      AuthService
	operations *prometheus.CounterVec
}

// NewAuthMetricsService registers the auth_operations_total counter on reg.
func NewAuthMetricsService(reg prometheus.Registerer) AuthServiceWrapper {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_operations_total",
		Help: "Authentication operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(operations)

	return &AuthMetricsService{operations: operations}
}

func (m *AuthMetricsService) Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error) {
	user, err := m.inner.Register(ctx, request)
	m.observe("register", err)
	return user, err
}

func (m *AuthMetricsService) Login(ctx context.Context, request models.LoginRequest, now time.Time) (models.PublicUser, models.Token, error) {
	user, token, err := m.inner.Login(ctx, request, now)
	m.observe("login", err)
	return user, token, err
}

func (m *AuthMetricsService) GetAuthenticatedIdentity(ctx context.Context, userID int64) (models.PublicUser, error) {
	user, err := m.inner.GetAuthenticatedIdentity(ctx, userID)
	m.observe("get_identity", err)
	return user, err
}

func (m *AuthMetricsService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	err := m.inner.ChangePassword(ctx, userID, request)
	m.observe("change_password", err)
	return err
}

func (m *AuthMetricsService) Authenticate(ctx context.Context, token string, now time.Time) (models.Identity, error) {
	identity, err := m.inner.Authenticate(ctx, token, now)
	m.observe("authenticate", err)
	return identity, err
}

func (m *AuthMetricsService) Wrap(wrapped AuthService) AuthService {
	m.inner = wrapped
	return m
}

func (m *AuthMetricsService) observe(operation string, err error) {
	m.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

// Outcome classifies err into one of the Outcome* label values.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrValidation):
		return OutcomeValidation
	case errors.Is(err, ErrConflict):
		return OutcomeConflict
	case errors.Is(err, ErrUnauthorized):
		return OutcomeUnauthorized
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
