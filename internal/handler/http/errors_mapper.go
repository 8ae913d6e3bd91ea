package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-auth/internal/app"
	"github.com/MKhiriev/go-user-auth/internal/service"
	"github.com/MKhiriev/go-user-auth/models"
)

// errorStatusMap maps service error kinds to statuses of the auth routes.
// Conflicts and missing users are reported as 401 so that the response does
// not reveal which usernames exist.
var errorStatusMap = map[error]int{
	service.ErrValidation:   http.StatusBadRequest,
	service.ErrConflict:     http.StatusUnauthorized,
	service.ErrNotFound:     http.StatusUnauthorized,
	service.ErrUnauthorized: http.StatusUnauthorized,
	service.ErrInternal:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse returns the status and body for err. unauthorizedMsg is the
// body of every 401, so callers pick one message per route.
func errorResponse(err error, unauthorizedMsg string) (int, models.MessageResponse) {
	status := statusFromError(err)

	switch status {
	case http.StatusBadRequest:
		return status, models.MessageResponse{Message: app.MsgInvalidDataProvided + ": " + err.Error()}
	case http.StatusUnauthorized:
		return status, models.MessageResponse{Message: unauthorizedMsg}
	default:
		return status, models.MessageResponse{Message: app.MsgInternalServerError}
	}
}

// registrationErrorResponse is errorResponse for POST /auth/register. Every
// failure other than invalid input is reported as 401.
func registrationErrorResponse(err error) (int, models.MessageResponse) {
	status, body := errorResponse(err, app.MsgRegistrationFailed)
	if status == http.StatusInternalServerError {
		return http.StatusUnauthorized, models.MessageResponse{Message: app.MsgRegistrationFailed}
	}
	return status, body
}
