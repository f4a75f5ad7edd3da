package request

import (
	"github.com/shopspring/decimal"

	"github.com/prakoso/storely/internal/pricing"
)

type CreateShop struct {
	Name             string                    `validate:"required"                json:"name"`
	Slug             string                    `validate:"required,lowercase"      json:"slug"`
	TaxEnabled       bool                      `                                   json:"taxEnabled"`
	TaxRate          decimal.Decimal           `                                   json:"taxRate"`
	DiscountSettings *pricing.DiscountSettings `                                   json:"discountSettings,omitempty"`
}

type UpdateShop struct {
	Name             string                    `validate:"required"           json:"name"`
	TaxEnabled       bool                      `                              json:"taxEnabled"`
	TaxRate          decimal.Decimal           `                              json:"taxRate"`
	DiscountSettings *pricing.DiscountSettings `                              json:"discountSettings,omitempty"`
}
