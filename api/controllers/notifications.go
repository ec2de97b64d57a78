package controllers

import (
	"net/http"

	"github.com/rafaeltorres/rocketcart-backend/api/responses"
	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
)

// Notifications returns the session's recent notification feed, newest
// last. The feed is bounded, so old entries fall off.
func Notifications(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := resolveSession(w, r, sessions, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, session.Feed.Recent())
	}
}
