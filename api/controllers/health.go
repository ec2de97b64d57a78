package controllers

import (
	"context"
	"net/http"

	"github.com/rafaeltorres/rocketcart-backend/api/responses"
	"github.com/rafaeltorres/rocketcart-backend/pkg/config"
	pkgerrors "github.com/rafaeltorres/rocketcart-backend/pkg/errors"
	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
)

// Pinger is the health check surface a backing service exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz reports readiness: every named pinger must answer. Backends that
// have no connection to check (the in-memory store) simply pass no pinger.
func Healthz(cfg *config.Config, logg *logger.Logger, pingers map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RocketCart-Env", cfg.App.Env)

		failures := map[string]string{}
		for name, p := range pingers {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				failures[name] = err.Error()
			}
		}

		if len(failures) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency check failed").
				WithDetails(failures)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
