package cart

import "github.com/rafaeltorres/rocketcart-backend/internal/catalog"

// LineItem is one product entry in the cart. Catalog attributes are copied
// verbatim when the item is first added; only Amount changes afterwards.
// Amount is always >= 1 while the item is present.
type LineItem struct {
	catalog.Product
	Amount int `json:"amount"`
}

// Cart is the ordered, id-unique collection of line items. Order is
// insertion order.
type Cart []LineItem

// Clone returns a deep-enough copy; line items are value types.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// IndexOf returns the position of the item with the given product id, or -1.
func (c Cart) IndexOf(productID string) int {
	for i, item := range c {
		if item.Key() == productID {
			return i
		}
	}
	return -1
}

// TotalItems sums the requested amounts across all line items.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c {
		total += item.Amount
	}
	return total
}
