package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/prakoso/storely/internal/pricing"
)

func TestNumericDecimalRoundTrip(t *testing.T) {
	expected := decimal.RequireFromString("19.99")

	actual := DecimalFromNumeric(NumericFromDecimal(expected))

	assert.True(t, expected.Equal(actual), "expected %s got %s", expected, actual)
}

func TestShopConfig(t *testing.T) {
	t.Run("given no discount settings should map without discounts", func(t *testing.T) {
		shop := Shop{
			ID:         uuid.New(),
			TaxEnabled: true,
			TaxRate:    NumericFromDecimal(decimal.NewFromInt(17)),
		}

		config, err := shop.Config()

		assert.NoError(t, err)
		assert.Equal(t, shop.ID, config.ID)
		assert.True(t, config.TaxEnabled)
		assert.Equal(t, "17", config.TaxRate.String())
		assert.Nil(t, config.Discounts)
	})

	t.Run("given discount settings jsonb should parse tiers", func(t *testing.T) {
		shop := Shop{
			ID: uuid.New(),
			DiscountSettings: []byte(`{
				"enabled": true,
				"tiers": [
					{
						"min_spent": "100",
						"min_orders": 2,
						"discount": {"kind": "percentage", "value": "10"}
					}
				],
				"base": {"discount": {"kind": "fixed", "value": "1"}, "applicable_to": "all"}
			}`),
		}

		config, err := shop.Config()

		assert.NoError(t, err)
		if assert.NotNil(t, config.Discounts) {
			assert.True(t, config.Discounts.Enabled)
			assert.Len(t, config.Discounts.Tiers, 1)
			assert.Equal(t, pricing.RuleKindPercentage, config.Discounts.Tiers[0].Discount.Kind)
			assert.NotNil(t, config.Discounts.Base)
		}
	})

	t.Run("given malformed discount settings should error", func(t *testing.T) {
		shop := Shop{ID: uuid.New(), DiscountSettings: []byte(`{"enabled":`)}

		_, err := shop.Config()

		assert.Error(t, err)
	})
}

func TestCartRecord(t *testing.T) {
	t.Run("given items jsonb should parse items", func(t *testing.T) {
		productId := uuid.New()
		cart := Cart{
			ID:         uuid.New(),
			ShopID:     uuid.New(),
			Items:      []byte(`[{"product_id":"` + productId.String() + `","quantity":3}]`),
			CouponCode: pgtype.Text{String: "SAVE10", Valid: true},
		}

		record, err := cart.Record()

		assert.NoError(t, err)
		assert.Len(t, record.Items, 1)
		assert.Equal(t, productId, record.Items[0].ProductID)
		assert.EqualValues(t, 3, record.Items[0].Quantity)
		assert.Equal(t, "SAVE10", record.CouponCode)
	})

	t.Run("given empty items should return empty list", func(t *testing.T) {
		cart := Cart{ID: uuid.New(), ShopID: uuid.New()}

		record, err := cart.Record()

		assert.NoError(t, err)
		assert.Empty(t, record.Items)
	})

	t.Run("given invalid item quantity should error", func(t *testing.T) {
		cart := Cart{
			ID:     uuid.New(),
			ShopID: uuid.New(),
			Items:  []byte(`[{"product_id":"` + uuid.NewString() + `","quantity":0}]`),
		}

		_, err := cart.Record()

		assert.ErrorIs(t, err, pricing.ErrInvalidCartItem)
	})
}
