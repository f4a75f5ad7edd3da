package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCoupon struct {
	Code         string           `validate:"required,uppercase"              json:"code"`
	DiscountType string           `validate:"required,oneof=PERCENTAGE FIXED" json:"discountType"`
	Value        decimal.Decimal  `validate:"required"                        json:"value"`
	MaxDiscount  *decimal.Decimal `                                           json:"maxDiscount,omitempty"`
	IsActive     bool             `                                           json:"isActive"`
	StartsAt     *time.Time       `                                           json:"startsAt,omitempty"`
	EndsAt       *time.Time       `                                           json:"endsAt,omitempty"`
}
