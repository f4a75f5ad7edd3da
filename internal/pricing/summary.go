package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int32
	Published bool
}

type Variant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Price     *decimal.Decimal
	Quantity  *int32
}

type ShopConfig struct {
	ID         uuid.UUID
	TaxEnabled bool
	TaxRate    decimal.Decimal
	Discounts  *DiscountSettings
}

type CartRecord struct {
	ID         uuid.UUID
	ShopID     uuid.UUID
	Items      []CartItem
	CouponCode string
	ExpiresAt  time.Time
}

type Line struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int32
	Total     decimal.Decimal
}

type Summary struct {
	CartID           uuid.UUID
	Lines            []Line
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Shipping         decimal.Decimal
	Discount         decimal.Decimal
	CustomerDiscount *decimal.Decimal
	CouponDiscount   *decimal.Decimal
	Total            decimal.Decimal
	CouponCode       string
	ExpiresAt        time.Time
}

// BuildSummary aggregates a cart into a priced view. Lines whose product is
// gone or unpublished are dropped without surfacing an error; a variant's
// price supersedes the product's for its line. The coupon discount only
// applies while the coupon still validates, tax applies to the subtotal net
// of the coupon discount, and the total is floored at zero. Shipping is a
// fixed zero until rate calculation lands.
func BuildSummary(
	cart CartRecord,
	shop ShopConfig,
	products map[uuid.UUID]Product,
	variants map[uuid.UUID]Variant,
	customer *CustomerStats,
	coupon *Coupon,
	now time.Time,
) Summary {
	summary := Summary{
		CartID:     cart.ID,
		Lines:      []Line{},
		Subtotal:   decimal.Zero,
		Tax:        decimal.Zero,
		Shipping:   decimal.Zero,
		Discount:   decimal.Zero,
		Total:      decimal.Zero,
		CouponCode: cart.CouponCode,
		ExpiresAt:  cart.ExpiresAt,
	}
	if len(cart.Items) == 0 {
		return summary
	}

	subtotal := decimal.Zero
	customerDiscount := decimal.Zero
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok || !product.Published {
			continue
		}

		name := product.Name
		unitPrice := product.Price
		if item.VariantID != nil {
			if variant, ok := variants[*item.VariantID]; ok {
				name = variant.Name
				if variant.Price != nil {
					unitPrice = *variant.Price
				}
			}
		}

		quantity := decimal.NewFromInt32(item.Quantity)
		lineTotal := unitPrice.Mul(quantity)
		subtotal = subtotal.Add(lineTotal)

		unitDiscount := ComputeDiscount(shop.Discounts, customer, unitPrice)
		customerDiscount = customerDiscount.Add(unitDiscount.Mul(quantity))

		summary.Lines = append(summary.Lines, Line{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
			Total:     lineTotal,
		})
	}

	couponDiscount := decimal.Zero
	if coupon != nil && cart.CouponCode != "" {
		if err := ValidateCoupon(*coupon, shop.ID, now); err == nil {
			couponDiscount = CouponDiscount(*coupon, subtotal)
		}
	}

	tax := decimal.Zero
	if shop.TaxEnabled {
		tax = subtotal.Sub(couponDiscount).Mul(shop.TaxRate).Div(decimal.NewFromInt(100))
	}

	total := subtotal.
		Sub(couponDiscount).
		Sub(customerDiscount).
		Add(tax).
		Add(summary.Shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	summary.Subtotal = subtotal
	summary.Tax = tax
	summary.Discount = customerDiscount.Add(couponDiscount)
	summary.Total = total
	if customerDiscount.IsPositive() {
		summary.CustomerDiscount = &customerDiscount
	}
	if couponDiscount.IsPositive() {
		summary.CouponDiscount = &couponDiscount
	}
	return summary
}
