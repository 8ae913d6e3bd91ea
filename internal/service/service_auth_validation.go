package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/validators"
	"github.com/MKhiriev/go-user-auth/models"
)

// AuthValidationService rejects malformed requests before they reach the
// wrapped [AuthService]. Validation failures are returned wrapped with
// [ErrValidation].
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewAuthValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error) {
	// request should consist of:
	//  - Username (3..30)
	//  - Email
	//  - Password (6+)
	//  - (not always) FirstName, LastName, Company
	if err := v.validate(ctx, request); err != nil {
		return models.PublicUser{}, err
	}

	return v.inner.Register(ctx, request)
}

func (v *AuthValidationService) Login(ctx context.Context, request models.LoginRequest, now time.Time) (models.PublicUser, models.Token, error) {
	if err := v.validate(ctx, request); err != nil {
		return models.PublicUser{}, models.Token{}, err
	}

	return v.inner.Login(ctx, request, now)
}

func (v *AuthValidationService) GetAuthenticatedIdentity(ctx context.Context, userID int64) (models.PublicUser, error) {
	return v.inner.GetAuthenticatedIdentity(ctx, userID)
}

func (v *AuthValidationService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	if err := v.validate(ctx, request); err != nil {
		return err
	}

	return v.inner.ChangePassword(ctx, userID, request)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, token string, now time.Time) (models.Identity, error) {
	return v.inner.Authenticate(ctx, token, now)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

func (v *AuthValidationService) validate(ctx context.Context, request any) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Type("request", request).Msg("request validation failed")
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}
