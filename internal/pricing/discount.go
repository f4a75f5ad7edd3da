package pricing

import (
	"github.com/shopspring/decimal"
)

type RuleKind string

const (
	RuleKindPercentage RuleKind = "percentage"
	RuleKindFixed      RuleKind = "fixed"
)

// DiscountRule is the tagged variant stored inside a shop's discount
// settings. Unknown kinds evaluate to zero.
type DiscountRule struct {
	Kind  RuleKind        `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

func (r DiscountRule) Amount(basePrice decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case RuleKindPercentage:
		return basePrice.Mul(r.Value).Div(decimal.NewFromInt(100))
	case RuleKindFixed:
		return r.Value
	}
	return decimal.Zero
}

type DiscountTier struct {
	MinSpent  decimal.Decimal `json:"min_spent"`
	MinOrders int32           `json:"min_orders"`
	Discount  DiscountRule    `json:"discount"`
}

type BaseDiscount struct {
	Discount DiscountRule `json:"discount"`
	// ApplicableTo is carried for forward compatibility; every scope value
	// is currently treated as applicable.
	ApplicableTo string `json:"applicable_to"`
}

type DiscountSettings struct {
	Enabled bool           `json:"enabled"`
	Tiers   []DiscountTier `json:"tiers"`
	Base    *BaseDiscount  `json:"base,omitempty"`
}

type CustomerStats struct {
	TotalSpent decimal.Decimal
	OrderCount int32
}

// ComputeDiscount returns the per-unit loyalty discount for a customer.
// Tiers are scanned in configuration order and the first tier whose spend
// and order thresholds are both met wins; when none match the shop's base
// rule applies. The result is clamped to [0, basePrice].
func ComputeDiscount(
	settings *DiscountSettings,
	customer *CustomerStats,
	basePrice decimal.Decimal,
) decimal.Decimal {
	if settings == nil || !settings.Enabled || customer == nil {
		return decimal.Zero
	}

	for _, tier := range settings.Tiers {
		if customer.TotalSpent.GreaterThanOrEqual(tier.MinSpent) &&
			customer.OrderCount >= tier.MinOrders {
			return clampDiscount(tier.Discount.Amount(basePrice), basePrice)
		}
	}

	if settings.Base != nil {
		return clampDiscount(settings.Base.Discount.Amount(basePrice), basePrice)
	}

	return decimal.Zero
}

func clampDiscount(discount, basePrice decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(basePrice) {
		return basePrice
	}
	return discount
}
