package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID               uuid.UUID        `json:"id"`
	Items            []CartItem       `json:"items"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	Tax              decimal.Decimal  `json:"tax"`
	Shipping         decimal.Decimal  `json:"shipping"`
	Discount         decimal.Decimal  `json:"discount"`
	CustomerDiscount *decimal.Decimal `json:"customerDiscount,omitempty"`
	CouponDiscount   *decimal.Decimal `json:"couponDiscount,omitempty"`
	Total            decimal.Decimal  `json:"total"`
	CouponCode       string           `json:"couponCode"`
	ExpiresAt        time.Time        `json:"expiresAt"`
}

type CartItem struct {
	ProductID uuid.UUID       `json:"productId"`
	VariantID *uuid.UUID      `json:"variantId,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

type CartMutation struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	CartID  uuid.UUID `json:"cartId"`
}
