package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-auth/internal/app"
	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/utils"
	"github.com/MKhiriev/go-user-auth/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeMessage(w, r, http.StatusBadRequest, app.MsgInvalidJSON)
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), request)
	if err != nil {
		status, body := registrationErrorResponse(err)
		h.writeErrorResponse(w, r, err, status, body)
		return
	}

	h.writeJSON(w, r, models.RegisterResponse{
		Message:  app.MsgRegistrationSuccessful,
		UserInfo: user,
	}, http.StatusAccepted)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeMessage(w, r, http.StatusBadRequest, app.MsgInvalidJSON)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), request, h.now())
	if err != nil {
		h.writeError(w, r, err, app.MsgInvalidCredentials)
		return
	}

	log.Debug().Int64("user_id", user.ID).Msg("user successfully logged in")

	h.cookies.Attach(w, token)
	h.writeJSON(w, r, models.LoginResponse{
		Message: app.MsgLoginSuccessful,
		User:    user,
	}, http.StatusAccepted)
}

func (h *Handler) authenticatedUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		logger.FromRequest(r).Err(ErrNoIdentityInContext).Send()
		h.writeMessage(w, r, http.StatusUnauthorized, app.MsgUnauthorized)
		return
	}

	user, err := h.services.AuthService.GetAuthenticatedIdentity(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, r, err, app.MsgUnauthorized)
		return
	}

	h.writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := identityFromRequest(r)
	if !ok {
		log.Err(ErrNoIdentityInContext).Send()
		h.writeMessage(w, r, http.StatusUnauthorized, app.MsgUnauthorized)
		return
	}

	var request models.ChangePasswordRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeMessage(w, r, http.StatusBadRequest, app.MsgInvalidJSON)
		return
	}

	if err := h.services.AuthService.ChangePassword(r.Context(), identity.UserID, request); err != nil {
		h.writeError(w, r, err, app.MsgUnauthorized)
		return
	}

	h.writeMessage(w, r, http.StatusAccepted, app.MsgPasswordChanged)
}

// logout clears the session cookie. Tokens are stateless, so a copy of the
// token kept by the client stays valid until it expires.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	h.writeMessage(w, r, http.StatusOK, app.MsgLoggedOut)
}

// writeError logs err and writes the status and body derived from its kind.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, unauthorizedMsg string) {
	status, body := errorResponse(err, unauthorizedMsg)
	h.writeErrorResponse(w, r, err, status, body)
}

// writeErrorResponse writes status and body. Internal errors are logged at
// error level even when the route reports them with another status.
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, err error, status int, body models.MessageResponse) {
	log := logger.FromRequest(r)
	if statusFromError(err) >= http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}

	h.writeJSON(w, r, body, status)
}

func (h *Handler) writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, models.MessageResponse{Message: message}, status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response failed")
	}
}
