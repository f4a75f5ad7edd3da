package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inErrors "github.com/prakoso/storely/internal/common/errors"
)

type CouponKind string

const (
	CouponKindPercentage CouponKind = "PERCENTAGE"
	CouponKindFixed      CouponKind = "FIXED"
)

type Coupon struct {
	ShopID      uuid.UUID
	Code        string
	Kind        CouponKind
	Value       decimal.Decimal
	MaxDiscount *decimal.Decimal
	Active      bool
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// ValidateCoupon checks ownership and the activity window. Absence of the
// coupon itself is reported by the lookup layer as ErrCouponNotFound.
func ValidateCoupon(coupon Coupon, shopID uuid.UUID, now time.Time) error {
	if !coupon.Active || coupon.ShopID != shopID {
		return inErrors.ErrCouponInvalid
	}
	if coupon.StartsAt != nil && coupon.StartsAt.After(now) {
		return inErrors.ErrCouponNotYetValid
	}
	if coupon.EndsAt != nil && coupon.EndsAt.Before(now) {
		return inErrors.ErrCouponExpired
	}
	return nil
}

// CouponDiscount computes the coupon's discount for a subtotal, capped by
// MaxDiscount when one is configured. The result is never negative.
func CouponDiscount(coupon Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch coupon.Kind {
	case CouponKindPercentage:
		discount = subtotal.Mul(coupon.Value).Div(decimal.NewFromInt(100))
	case CouponKindFixed:
		discount = coupon.Value
	default:
		return decimal.Zero
	}
	if coupon.MaxDiscount != nil && discount.GreaterThan(*coupon.MaxDiscount) {
		discount = *coupon.MaxDiscount
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}
