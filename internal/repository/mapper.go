package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/prakoso/storely/internal/pricing"
)

func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		Int:              d.Coefficient(),
		NaN:              false,
		Valid:            true,
	}
}

func DecimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func (s Shop) Config() (pricing.ShopConfig, error) {
	config := pricing.ShopConfig{
		ID:         s.ID,
		TaxEnabled: s.TaxEnabled,
		TaxRate:    DecimalFromNumeric(s.TaxRate),
	}
	if len(s.DiscountSettings) == 0 {
		return config, nil
	}
	settings := pricing.DiscountSettings{}
	err := json.Unmarshal(s.DiscountSettings, &settings)
	if err != nil {
		return pricing.ShopConfig{}, fmt.Errorf(
			"failed unmarshaling discount settings with error=%w",
			err,
		)
	}
	config.Discounts = &settings
	return config, nil
}

func (p Product) Pricing() pricing.Product {
	return pricing.Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     DecimalFromNumeric(p.Price),
		Quantity:  p.Quantity,
		Published: p.Published,
	}
}

func (v ProductVariant) Pricing() pricing.Variant {
	variant := pricing.Variant{
		ID:        v.ID,
		ProductID: v.ProductID,
		Name:      v.Name,
	}
	if v.Price.Valid {
		price := DecimalFromNumeric(v.Price)
		variant.Price = &price
	}
	if v.Quantity.Valid {
		quantity := v.Quantity.Int32
		variant.Quantity = &quantity
	}
	return variant
}

func (cu Customer) Stats() pricing.CustomerStats {
	return pricing.CustomerStats{
		TotalSpent: DecimalFromNumeric(cu.TotalSpent),
		OrderCount: cu.OrderCount,
	}
}

func (co Coupon) Pricing() pricing.Coupon {
	coupon := pricing.Coupon{
		ShopID: co.ShopID,
		Code:   co.Code,
		Kind:   pricing.CouponKind(co.DiscountType),
		Value:  DecimalFromNumeric(co.Value),
		Active: co.IsActive,
	}
	if co.MaxDiscount.Valid {
		maxDiscount := DecimalFromNumeric(co.MaxDiscount)
		coupon.MaxDiscount = &maxDiscount
	}
	if co.StartsAt.Valid {
		startsAt := co.StartsAt.Time
		coupon.StartsAt = &startsAt
	}
	if co.EndsAt.Valid {
		endsAt := co.EndsAt.Time
		coupon.EndsAt = &endsAt
	}
	return coupon
}

func (ca Cart) Record() (pricing.CartRecord, error) {
	items := []pricing.CartItem{}
	if len(ca.Items) > 0 {
		err := json.Unmarshal(ca.Items, &items)
		if err != nil {
			return pricing.CartRecord{}, fmt.Errorf(
				"failed unmarshaling cart items with error=%w",
				err,
			)
		}
	}
	err := pricing.ValidateItems(items)
	if err != nil {
		return pricing.CartRecord{}, err
	}
	var expiresAt time.Time
	if ca.ExpiresAt.Valid {
		expiresAt = ca.ExpiresAt.Time
	}
	return pricing.CartRecord{
		ID:         ca.ID,
		ShopID:     ca.ShopID,
		Items:      items,
		CouponCode: ca.CouponCode.String,
		ExpiresAt:  expiresAt,
	}, nil
}
