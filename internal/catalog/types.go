package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product carries the static attributes served by the catalog oracle. The
// upstream assigns ids; they are copied verbatim into the cart when an item
// is first added and never re-fetched on later quantity changes.
type Product struct {
	ID    json.Number     `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// Key returns the product id as the opaque string used for cart lookups.
func (p Product) Key() string {
	return p.ID.String()
}

type stockResponse struct {
	ID     json.Number `json:"id"`
	Amount int         `json:"amount"`
}
