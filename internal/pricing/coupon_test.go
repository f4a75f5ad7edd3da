package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/prakoso/storely/internal/common/errors"
)

func TestValidateCoupon(t *testing.T) {
	shopId := uuid.New()
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		coupon   Coupon
		expected error
	}{
		{
			name:     "given active coupon without window should be valid",
			coupon:   Coupon{ShopID: shopId, Active: true},
			expected: nil,
		},
		{
			name:     "given inactive coupon should be invalid",
			coupon:   Coupon{ShopID: shopId, Active: false},
			expected: inErrors.ErrCouponInvalid,
		},
		{
			name:     "given coupon from another shop should be invalid",
			coupon:   Coupon{ShopID: uuid.New(), Active: true},
			expected: inErrors.ErrCouponInvalid,
		},
		{
			name:     "given coupon starting in the future should be not yet valid",
			coupon:   Coupon{ShopID: shopId, Active: true, StartsAt: &future},
			expected: inErrors.ErrCouponNotYetValid,
		},
		{
			name:     "given coupon ended in the past should be expired",
			coupon:   Coupon{ShopID: shopId, Active: true, EndsAt: &past},
			expected: inErrors.ErrCouponExpired,
		},
		{
			name: "given coupon inside its window should be valid",
			coupon: Coupon{
				ShopID:   shopId,
				Active:   true,
				StartsAt: &past,
				EndsAt:   &future,
			},
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := ValidateCoupon(test.coupon, shopId, now)
			assert.ErrorIs(t, actual, test.expected)
		})
	}
}

func TestCouponDiscount(t *testing.T) {
	cap20 := decimal.NewFromInt(20)

	tests := []struct {
		name     string
		coupon   Coupon
		subtotal decimal.Decimal
		expected string
	}{
		{
			name:     "given percentage coupon should discount proportionally",
			coupon:   Coupon{Kind: CouponKindPercentage, Value: decimal.NewFromInt(10)},
			subtotal: decimal.NewFromInt(200),
			expected: "20",
		},
		{
			name:     "given fixed coupon should discount flat amount",
			coupon:   Coupon{Kind: CouponKindFixed, Value: decimal.NewFromInt(15)},
			subtotal: decimal.NewFromInt(200),
			expected: "15",
		},
		{
			name: "given percentage coupon above max discount should cap at max",
			coupon: Coupon{
				Kind:        CouponKindPercentage,
				Value:       decimal.NewFromInt(50),
				MaxDiscount: &cap20,
			},
			subtotal: decimal.NewFromInt(200),
			expected: "20",
		},
		{
			name: "given percentage coupon below max discount should not cap",
			coupon: Coupon{
				Kind:        CouponKindPercentage,
				Value:       decimal.NewFromInt(5),
				MaxDiscount: &cap20,
			},
			subtotal: decimal.NewFromInt(200),
			expected: "10",
		},
		{
			name:     "given negative coupon value should return zero",
			coupon:   Coupon{Kind: CouponKindFixed, Value: decimal.NewFromInt(-5)},
			subtotal: decimal.NewFromInt(200),
			expected: "0",
		},
		{
			name:     "given unknown coupon kind should return zero",
			coupon:   Coupon{Kind: CouponKind("BOGOF"), Value: decimal.NewFromInt(10)},
			subtotal: decimal.NewFromInt(200),
			expected: "0",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := CouponDiscount(test.coupon, test.subtotal)
			assert.Equal(t, test.expected, actual.String())
		})
	}
}
