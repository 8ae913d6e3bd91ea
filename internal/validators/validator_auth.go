package validators

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/MKhiriev/go-user-auth/models"
)

// Length limits for account fields.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 6
	ProfileMaxLength  = 255
	EmailMaxLength    = 255
)

// AuthValidator checks the request bodies of the authentication endpoints.
type AuthValidator struct{}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value)

	case models.LoginRequest:
		return v.validateLoginRequest(value)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value)

	case models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(value)
	case *models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateRegisterRequest(r models.RegisterRequest) error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			validation.Length(UsernameMinLength, UsernameMaxLength),
		),
		validation.Field(
			&r.Email,
			validation.Required,
			validation.Length(0, EmailMaxLength),
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(PasswordMinLength, 0),
		),
		validation.Field(&r.FirstName, validation.Length(0, ProfileMaxLength)),
		validation.Field(&r.LastName, validation.Length(0, ProfileMaxLength)),
		validation.Field(&r.Company, validation.Length(0, ProfileMaxLength)),
	)
}

func (v *AuthValidator) validateLoginRequest(r models.LoginRequest) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (v *AuthValidator) validateChangePasswordRequest(r models.ChangePasswordRequest) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(
			&r.NewPassword,
			validation.Required,
			validation.Length(PasswordMinLength, 0),
		),
	)
}
