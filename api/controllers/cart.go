package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaeltorres/rocketcart-backend/api/middleware"
	"github.com/rafaeltorres/rocketcart-backend/api/responses"
	"github.com/rafaeltorres/rocketcart-backend/api/validators"
	"github.com/rafaeltorres/rocketcart-backend/internal/cart"
	pkgerrors "github.com/rafaeltorres/rocketcart-backend/pkg/errors"
	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
)

// SessionSource resolves the cart session a request acts on.
type SessionSource interface {
	Session(ctx context.Context, sessionID string) (*cart.Session, error)
}

type setAmountRequest struct {
	// pointer so an explicit zero survives decoding; the engine decides
	// what to do with it
	Amount *int `json:"amount" validate:"required"`
}

// CartFetch returns the current cart snapshot.
func CartFetch(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := resolveSession(w, r, sessions, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, session.Engine.GetCart(r.Context()))
	}
}

// CartAddItem adds one unit of the product to the cart. The response is
// always the resulting cart; a rejected add shows up as an unchanged cart
// plus a notification.
func CartAddItem(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		session, ok := resolveSession(w, r, sessions, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, session.Engine.AddItem(r.Context(), productID))
	}
}

// CartRemoveItem removes the whole line item for the product.
func CartRemoveItem(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		session, ok := resolveSession(w, r, sessions, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, session.Engine.RemoveItem(r.Context(), productID))
	}
}

// CartSetAmount sets the absolute quantity for the product.
func CartSetAmount(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var body setAmountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, ok := resolveSession(w, r, sessions, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, session.Engine.SetAmount(r.Context(), productID, *body.Amount))
	}
}

func resolveSession(w http.ResponseWriter, r *http.Request, sessions SessionSource, logg *logger.Logger) (*cart.Session, bool) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session id missing from request context"))
		return nil, false
	}
	session, err := sessions.Session(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}
	return session, true
}
