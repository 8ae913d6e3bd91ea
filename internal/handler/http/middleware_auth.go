package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-auth/internal/app"
	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/internal/utils"
	"github.com/MKhiriev/go-user-auth/models"
)

// auth is an HTTP middleware that enforces cookie-based authentication.
//
// It reads the session cookie, resolves it via
// [service.AuthService.Authenticate] and stores the resulting
// [models.Identity] in the request context (see [utils.WithIdentity]) before
// delegating to the next handler.
//
// Requests without a cookie, with an invalid or expired token, or whose
// token subject no longer exists are rejected with 401 and the same
// "unauthorized" body. The exact reason is only logged. Storage failures
// during resolution yield 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, ok := h.cookies.FromRequest(r)
		if !ok {
			log.Debug().Err(ErrNoSessionCookie).Msg("request rejected")
			h.writeMessage(w, r, http.StatusUnauthorized, app.MsgUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, token, h.now())
		if err != nil {
			if statusFromError(err) == http.StatusInternalServerError {
				log.Err(err).Msg("identity resolution failed")
				h.writeMessage(w, r, http.StatusInternalServerError, app.MsgInternalServerError)
				return
			}

			log.Debug().Err(err).Msg("request rejected")
			h.writeMessage(w, r, http.StatusUnauthorized, app.MsgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}

// identityFromRequest returns the identity placed by auth.
func identityFromRequest(r *http.Request) (models.Identity, bool) {
	return utils.GetIdentityFromContext(r.Context())
}
