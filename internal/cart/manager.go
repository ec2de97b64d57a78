package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/rafaeltorres/rocketcart-backend/internal/notify"
	"github.com/rafaeltorres/rocketcart-backend/internal/store"
	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
	"github.com/rafaeltorres/rocketcart-backend/pkg/metrics"
)

// Session bundles one session's engine with its notification feed.
type Session struct {
	Engine Service
	Feed   *notify.Feed
}

// Manager hands out per-session mutation engines, restoring each session's
// cart from the durable store exactly once. The map lock only guards
// engine creation; it does not serialize cart mutations within a session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	stock        stockOracle
	catalog      catalogOracle
	store        store.Store
	baseNotifier notify.Notifier
	feedCapacity int
	metrics      *metrics.CartMetrics
	logg         *logger.Logger
}

// ManagerParams carries the shared collaborators for all sessions.
type ManagerParams struct {
	Stock        stockOracle
	Catalog      catalogOracle
	Store        store.Store
	BaseNotifier notify.Notifier
	FeedCapacity int
	Metrics      *metrics.CartMetrics
	Logger       *logger.Logger
}

// NewManager wires the session manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Stock == nil {
		return nil, fmt.Errorf("stock oracle required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog oracle required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("durable store required")
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		stock:        params.Stock,
		catalog:      params.Catalog,
		store:        params.Store,
		baseNotifier: params.BaseNotifier,
		feedCapacity: params.FeedCapacity,
		metrics:      params.Metrics,
		logg:         params.Logger,
	}, nil
}

// Session returns the engine for the given session id, creating it on
// first use by restoring the persisted snapshot. An absent snapshot yields
// an empty cart; an unreadable one surfaces as an error so the cart is not
// silently reset.
func (m *Manager) Session(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[sessionID]; ok {
		return existing, nil
	}

	raw, found, err := m.store.Read(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	initial := Cart{}
	if found {
		initial, err = Decode(raw)
		if err != nil {
			return nil, err
		}
	}

	feed := notify.NewFeed(m.feedCapacity)
	engine, err := NewEngine(EngineParams{
		State:    NewState(initial),
		Stock:    m.stock,
		Catalog:  m.catalog,
		Store:    m.store,
		Key:      sessionID,
		Notifier: notify.NewMulti(m.baseNotifier, feed),
		Metrics:  m.metrics,
		Logger:   m.logg,
	})
	if err != nil {
		return nil, err
	}

	session := &Session{Engine: engine, Feed: feed}
	m.sessions[sessionID] = session
	return session, nil
}
