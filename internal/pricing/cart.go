package pricing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int32      `json:"quantity"`
}

var ErrInvalidCartItem = errors.New("invalid cart item")

// ValidateItems guards the storage boundary: item lists are persisted as
// jsonb and must not be trusted implicitly.
func ValidateItems(items []CartItem) error {
	for _, item := range items {
		if item.ProductID == uuid.Nil || item.Quantity < 1 {
			return ErrInvalidCartItem
		}
	}
	return nil
}

func sameLine(a CartItem, productID uuid.UUID, variantID *uuid.UUID) bool {
	if a.ProductID != productID {
		return false
	}
	if a.VariantID == nil || variantID == nil {
		return a.VariantID == nil && variantID == nil
	}
	return *a.VariantID == *variantID
}

// MergeItem adds an item to the list; the (productId, variantId) key is
// unique within a cart, so an existing line has its quantity incremented.
func MergeItem(items []CartItem, item CartItem) []CartItem {
	for i, existing := range items {
		if sameLine(existing, item.ProductID, item.VariantID) {
			items[i].Quantity = existing.Quantity + item.Quantity
			return items
		}
	}
	return append(items, item)
}

// SetQuantity replaces a line's quantity; a quantity of zero or less
// removes the line.
func SetQuantity(
	items []CartItem,
	productID uuid.UUID,
	variantID *uuid.UUID,
	quantity int32,
) []CartItem {
	if quantity <= 0 {
		return RemoveItem(items, productID, variantID)
	}
	for i, existing := range items {
		if sameLine(existing, productID, variantID) {
			items[i].Quantity = quantity
			return items
		}
	}
	return items
}

// RemoveItem filters a line out of the list; an absent line is a no-op.
func RemoveItem(items []CartItem, productID uuid.UUID, variantID *uuid.UUID) []CartItem {
	filtered := make([]CartItem, 0, len(items))
	for _, existing := range items {
		if sameLine(existing, productID, variantID) {
			continue
		}
		filtered = append(filtered, existing)
	}
	return filtered
}

// LineQuantity returns the quantity already held for a line, zero when the
// line is absent.
func LineQuantity(items []CartItem, productID uuid.UUID, variantID *uuid.UUID) int32 {
	for _, existing := range items {
		if sameLine(existing, productID, variantID) {
			return existing.Quantity
		}
	}
	return 0
}

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
)

// CartStatus derives the cart's lifecycle state once per request instead of
// comparing timestamps ad hoc in every branch.
func CartStatus(expiresAt time.Time, now time.Time) Status {
	if expiresAt.After(now) {
		return StatusActive
	}
	return StatusExpired
}

// CartTTL is how far a mutating write pushes a cart's expiry into the future.
const CartTTL = 30 * 24 * time.Hour
