package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rafaeltorres/rocketcart-backend/api/middleware"
	"github.com/rafaeltorres/rocketcart-backend/internal/cart"
	"github.com/rafaeltorres/rocketcart-backend/internal/catalog"
	"github.com/rafaeltorres/rocketcart-backend/internal/notify"
	pkgerrors "github.com/rafaeltorres/rocketcart-backend/pkg/errors"
	"github.com/rafaeltorres/rocketcart-backend/pkg/types"
)

type fakeEngine struct {
	cart       cart.Cart
	lastOp     string
	lastID     string
	lastAmount int
}

func (f *fakeEngine) GetCart(ctx context.Context) cart.Cart {
	f.lastOp = "get"
	return f.cart
}

func (f *fakeEngine) AddItem(ctx context.Context, productID string) cart.Cart {
	f.lastOp, f.lastID = "add", productID
	return f.cart
}

func (f *fakeEngine) RemoveItem(ctx context.Context, productID string) cart.Cart {
	f.lastOp, f.lastID = "remove", productID
	return f.cart
}

func (f *fakeEngine) SetAmount(ctx context.Context, productID string, amount int) cart.Cart {
	f.lastOp, f.lastID, f.lastAmount = "set", productID, amount
	return f.cart
}

type stubSessions struct {
	session *cart.Session
	err     error
	gotID   string
}

func (s *stubSessions) Session(ctx context.Context, sessionID string) (*cart.Session, error) {
	s.gotID = sessionID
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func newCartTestServer(sessions SessionSource) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.SessionID(nil))
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", CartFetch(sessions, nil))
		r.Route("/items/{productId}", func(r chi.Router) {
			r.Post("/", CartAddItem(sessions, nil))
			r.Delete("/", CartRemoveItem(sessions, nil))
			r.Put("/", CartSetAmount(sessions, nil))
		})
	})
	r.Get("/api/v1/notifications", Notifications(sessions, nil))
	return r
}

func testSession(engine cart.Service) (*cart.Session, *notify.Feed) {
	feed := notify.NewFeed(5)
	return &cart.Session{Engine: engine, Feed: feed}, feed
}

func TestCartFetch(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{cart: cart.Cart{{Product: catalog.Product{ID: json.Number("1"), Title: "Shoe"}, Amount: 2}}}
	session, _ := testSession(engine)
	sessions := &stubSessions{session: session}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set(middleware.SessionIDHeader, "sess-1")
	newCartTestServer(sessions).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if sessions.gotID != "sess-1" {
		t.Fatalf("session id not resolved from header, got %q", sessions.gotID)
	}
	if engine.lastOp != "get" {
		t.Fatalf("unexpected operation %q", engine.lastOp)
	}
}

func TestCartAddItem(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{cart: cart.Cart{}}
	session, _ := testSession(engine)
	sessions := &stubSessions{session: session}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/cart/items/42", nil)
	newCartTestServer(sessions).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if engine.lastOp != "add" || engine.lastID != "42" {
		t.Fatalf("unexpected call %q/%q", engine.lastOp, engine.lastID)
	}
}

func TestCartRemoveItem(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{cart: cart.Cart{}}
	session, _ := testSession(engine)
	sessions := &stubSessions{session: session}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/cart/items/42", nil)
	newCartTestServer(sessions).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if engine.lastOp != "remove" || engine.lastID != "42" {
		t.Fatalf("unexpected call %q/%q", engine.lastOp, engine.lastID)
	}
}

func TestCartSetAmount(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{cart: cart.Cart{}}
	session, _ := testSession(engine)
	sessions := &stubSessions{session: session}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/v1/cart/items/42", strings.NewReader(`{"amount":0}`))
	newCartTestServer(sessions).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	// zero reaches the engine; the silent no-op rule lives there, not here
	if engine.lastOp != "set" || engine.lastID != "42" || engine.lastAmount != 0 {
		t.Fatalf("unexpected call %q/%q/%d", engine.lastOp, engine.lastID, engine.lastAmount)
	}
}

func TestCartSetAmountMissingBody(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{cart: cart.Cart{}}
	session, _ := testSession(engine)
	sessions := &stubSessions{session: session}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/v1/cart/items/42", strings.NewReader(`{}`))
	newCartTestServer(sessions).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if engine.lastOp != "" {
		t.Fatalf("engine must not be called on invalid body, got %q", engine.lastOp)
	}
}

func TestCartSessionResolutionFailure(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{err: pkgerrors.New(pkgerrors.CodeDependency, "store unreachable")}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	newCartTestServer(sessions).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeDependency) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestNotificationsReturnsFeed(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{cart: cart.Cart{}}
	session, feed := testSession(engine)
	feed.Notify(context.Background(), notify.SeverityError, "could not add item to cart")
	sessions := &stubSessions{session: session}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/notifications", nil)
	newCartTestServer(sessions).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data []notify.Entry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Message != "could not add item to cart" {
		t.Fatalf("unexpected feed %+v", envelope.Data)
	}
}
