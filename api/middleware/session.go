package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
)

// SessionIDHeader identifies the browser session whose cart a request acts
// on, the server-side stand-in for the storefront's per-browser storage key.
const SessionIDHeader = "X-Session-Id"

type sessionIDKey struct{}

// SessionID assigns every request a session id. Clients that want a stable
// cart send the header back; requests without one get a fresh id, which is
// echoed in the response so the client can adopt it.
func SessionID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionIDHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(SessionIDHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionIDKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext returns the session id set by SessionID, or "".
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}
