package cart

import (
	"encoding/json"
	"strings"

	pkgerrors "github.com/rafaeltorres/rocketcart-backend/pkg/errors"
)

// Encode serializes the whole cart as one JSON snapshot.
func Encode(c Cart) (string, error) {
	if c == nil {
		c = Cart{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	return string(raw), nil
}

// Decode restores a cart from a stored snapshot. A blank snapshot yields an
// empty cart; a corrupt one is a dependency failure, never a silent reset.
func Decode(raw string) (Cart, error) {
	if strings.TrimSpace(raw) == "" {
		return Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart snapshot")
	}
	if c == nil {
		c = Cart{}
	}
	return c, nil
}
