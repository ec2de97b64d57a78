package cart

import (
	"context"
	"fmt"

	"github.com/rafaeltorres/rocketcart-backend/internal/catalog"
	"github.com/rafaeltorres/rocketcart-backend/internal/notify"
	"github.com/rafaeltorres/rocketcart-backend/internal/store"
	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
	"github.com/rafaeltorres/rocketcart-backend/pkg/metrics"
)

// User-facing messages pushed through the notifier on rejected operations.
const (
	msgOutOfStock   = "requested amount is out of stock"
	msgAddFailed    = "could not add item to cart"
	msgRemoveFailed = "could not remove item from cart"
	msgUpdateFailed = "could not update item amount"
)

const (
	opAdd    = "add_item"
	opRemove = "remove_item"
	opSet    = "set_amount"

	outcomeCommitted        = "committed"
	outcomeStockUnavailable = "stock_unavailable"
	outcomeOracleFailure    = "oracle_failure"
	outcomeItemNotFound     = "item_not_found"
	outcomePersistFailure   = "persist_failure"
	outcomeIgnored          = "ignored"
)

type stockOracle interface {
	GetStock(ctx context.Context, productID string) (int, error)
}

type catalogOracle interface {
	GetProduct(ctx context.Context, productID string) (*catalog.Product, error)
}

// Service is the consumer-facing cart surface. Every error path is handled
// internally: callers observe a cart that either changed or didn't, plus
// whatever the notifier delivered on the side.
type Service interface {
	GetCart(ctx context.Context) Cart
	AddItem(ctx context.Context, productID string) Cart
	RemoveItem(ctx context.Context, productID string) Cart
	SetAmount(ctx context.Context, productID string, amount int) Cart
}

// Engine implements the three validated cart mutations for one session.
//
// Each mutation validates against the stock oracle, builds the full next
// cart, persists the snapshot, and only then swaps it into State, so the
// in-memory and persisted copies agree after every successful call and
// nothing changes on a rejection.
//
// The validate-then-commit sequence is intentionally not atomic with
// respect to the oracles: two concurrent mutations for the same session
// can both pass the stock check against a stale amount, and the later
// commit wins. Known limitation carried over from the original design.
type Engine struct {
	state    *State
	stock    stockOracle
	catalog  catalogOracle
	store    store.Store
	key      string
	notifier notify.Notifier
	metrics  *metrics.CartMetrics
	logg     *logger.Logger
}

// EngineParams carries the collaborators for one session's engine.
type EngineParams struct {
	State    *State
	Stock    stockOracle
	Catalog  catalogOracle
	Store    store.Store
	Key      string
	Notifier notify.Notifier
	Metrics  *metrics.CartMetrics
	Logger   *logger.Logger
}

// NewEngine wires a mutation engine; all collaborators except metrics and
// logger are required.
func NewEngine(params EngineParams) (*Engine, error) {
	if params.State == nil {
		return nil, fmt.Errorf("cart state required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock oracle required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog oracle required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("durable store required")
	}
	if params.Key == "" {
		return nil, fmt.Errorf("storage key required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &Engine{
		state:    params.State,
		stock:    params.Stock,
		catalog:  params.Catalog,
		store:    params.Store,
		key:      params.Key,
		notifier: params.Notifier,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// GetCart returns a read-only snapshot for rendering.
func (e *Engine) GetCart(ctx context.Context) Cart {
	return e.state.Current()
}

// AddItem requests that one unit of the product be added to the cart.
func (e *Engine) AddItem(ctx context.Context, productID string) Cart {
	current := e.state.Current()
	idx := current.IndexOf(productID)

	available, err := e.stock.GetStock(ctx, productID)
	if err != nil {
		e.reject(ctx, opAdd, outcomeOracleFailure, msgAddFailed, err)
		return current
	}

	desired := 1
	if idx >= 0 {
		desired = current[idx].Amount + 1
	}
	if desired > available {
		e.reject(ctx, opAdd, outcomeStockUnavailable, msgOutOfStock, nil)
		return current
	}

	next := current.Clone()
	if idx >= 0 {
		next[idx].Amount = desired
	} else {
		product, err := e.catalog.GetProduct(ctx, productID)
		if err != nil {
			// never append an item with partial attributes
			e.reject(ctx, opAdd, outcomeOracleFailure, msgAddFailed, err)
			return current
		}
		next = append(next, LineItem{Product: *product, Amount: 1})
	}

	return e.commit(ctx, opAdd, current, next, msgAddFailed)
}

// RemoveItem removes the whole line item. Removing an absent item is an
// error, not a no-op.
func (e *Engine) RemoveItem(ctx context.Context, productID string) Cart {
	current := e.state.Current()
	idx := current.IndexOf(productID)
	if idx < 0 {
		e.reject(ctx, opRemove, outcomeItemNotFound, msgRemoveFailed, nil)
		return current
	}

	next := make(Cart, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)

	return e.commit(ctx, opRemove, current, next, msgRemoveFailed)
}

// SetAmount sets the absolute quantity of an existing item. Non-positive
// amounts are silently ignored. For an item not yet in the cart the call
// falls through to AddItem, adding a single unit regardless of the
// requested amount. That quirk is inherited from the storefront client and
// kept on purpose.
func (e *Engine) SetAmount(ctx context.Context, productID string, amount int) Cart {
	current := e.state.Current()
	if amount <= 0 {
		e.metrics.IncOperation(opSet, outcomeIgnored)
		return current
	}

	available, err := e.stock.GetStock(ctx, productID)
	if err != nil {
		e.reject(ctx, opSet, outcomeOracleFailure, msgUpdateFailed, err)
		return current
	}
	if amount > available {
		e.reject(ctx, opSet, outcomeStockUnavailable, msgOutOfStock, nil)
		return current
	}

	idx := current.IndexOf(productID)
	if idx < 0 {
		return e.AddItem(ctx, productID)
	}

	next := current.Clone()
	next[idx].Amount = amount

	return e.commit(ctx, opSet, current, next, msgUpdateFailed)
}

// commit persists the fully-built next cart, then swaps it into State.
// The live cart is never touched before the write succeeds.
func (e *Engine) commit(ctx context.Context, op string, current, next Cart, failureMsg string) Cart {
	snapshot, err := Encode(next)
	if err != nil {
		e.reject(ctx, op, outcomePersistFailure, failureMsg, err)
		return current
	}
	if err := e.store.Write(ctx, e.key, snapshot); err != nil {
		e.reject(ctx, op, outcomePersistFailure, failureMsg, err)
		return current
	}

	e.state.Replace(next)
	e.metrics.IncOperation(op, outcomeCommitted)
	return next.Clone()
}

// reject records a failed operation and surfaces the user-facing message.
// State and store stay untouched; nothing is retried.
func (e *Engine) reject(ctx context.Context, op, outcome, message string, cause error) {
	e.metrics.IncOperation(op, outcome)
	if cause != nil && e.logg != nil {
		ctx = e.logg.WithFields(ctx, map[string]any{"operation": op, "outcome": outcome})
		e.logg.Error(ctx, "cart.operation_rejected", cause)
	}
	if err := e.notifier.Notify(ctx, notify.SeverityError, message); err != nil && e.logg != nil {
		e.logg.Warn(e.logg.WithField(ctx, "operation", op), "notifier delivery failed")
	}
}
