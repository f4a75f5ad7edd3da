package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prakoso/storely/internal/pricing"
)

type Merchant struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Login struct {
	Token string `json:"token"`
}

type Shop struct {
	ID               uuid.UUID                 `json:"id"`
	Name             string                    `json:"name"`
	Slug             string                    `json:"slug"`
	TaxEnabled       bool                      `json:"taxEnabled"`
	TaxRate          decimal.Decimal           `json:"taxRate"`
	DiscountSettings *pricing.DiscountSettings `json:"discountSettings,omitempty"`
}

type Product struct {
	ID           uuid.UUID        `json:"id"`
	ShopID       uuid.UUID        `json:"shopId"`
	Name         string           `json:"name"`
	Sku          string           `json:"sku,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	ComparePrice *decimal.Decimal `json:"comparePrice,omitempty"`
	Quantity     int32            `json:"quantity"`
	Published    bool             `json:"published"`
}

type Variant struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"productId"`
	Name      string           `json:"name"`
	Sku       string           `json:"sku,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Quantity  *int32           `json:"quantity,omitempty"`
}

type Coupon struct {
	ID           uuid.UUID        `json:"id"`
	ShopID       uuid.UUID        `json:"shopId"`
	Code         string           `json:"code"`
	DiscountType string           `json:"discountType"`
	Value        decimal.Decimal  `json:"value"`
	MaxDiscount  *decimal.Decimal `json:"maxDiscount,omitempty"`
	IsActive     bool             `json:"isActive"`
	StartsAt     *time.Time       `json:"startsAt,omitempty"`
	EndsAt       *time.Time       `json:"endsAt,omitempty"`
}
