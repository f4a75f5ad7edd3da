package request

import (
	"github.com/shopspring/decimal"
)

type CreateProduct struct {
	Name         string           `validate:"required"       json:"name"`
	Sku          string           `                          json:"sku,omitempty"`
	Price        decimal.Decimal  `validate:"required"       json:"price"`
	ComparePrice *decimal.Decimal `                          json:"comparePrice,omitempty"`
	Quantity     int32            `validate:"gte=0"          json:"quantity"`
	Published    bool             `                          json:"published"`
}

type UpdateProduct struct {
	Name         string           `validate:"required"       json:"name"`
	Sku          string           `                          json:"sku,omitempty"`
	Price        decimal.Decimal  `validate:"required"       json:"price"`
	ComparePrice *decimal.Decimal `                          json:"comparePrice,omitempty"`
	Quantity     int32            `validate:"gte=0"          json:"quantity"`
	Published    bool             `                          json:"published"`
}

type CreateVariant struct {
	Name     string           `validate:"required" json:"name"`
	Sku      string           `                    json:"sku,omitempty"`
	Price    *decimal.Decimal `                    json:"price,omitempty"`
	Quantity *int32           `                    json:"quantity,omitempty"`
}
