package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildSummaryEmptyCart(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	cart := CartRecord{ID: uuid.New(), ExpiresAt: now.Add(CartTTL)}
	shop := ShopConfig{ID: uuid.New(), TaxEnabled: true, TaxRate: decimal.NewFromInt(17)}

	summary := BuildSummary(cart, shop, nil, nil, nil, nil, now)

	assert.Equal(t, cart.ID, summary.CartID)
	assert.Empty(t, summary.Lines)
	assert.Equal(t, "0", summary.Subtotal.String())
	assert.Equal(t, "0", summary.Tax.String())
	assert.Equal(t, "0", summary.Shipping.String())
	assert.Equal(t, "0", summary.Discount.String())
	assert.Equal(t, "0", summary.Total.String())
	assert.Nil(t, summary.CustomerDiscount)
	assert.Nil(t, summary.CouponDiscount)
}

func TestBuildSummaryDropsUnavailableProducts(t *testing.T) {
	now := time.Now()
	published := Product{
		ID:        uuid.New(),
		Name:      "mug",
		Price:     decimal.NewFromInt(10),
		Published: true,
	}
	unpublished := Product{
		ID:    uuid.New(),
		Name:  "draft",
		Price: decimal.NewFromInt(99),
	}
	missing := uuid.New()

	cart := CartRecord{
		ID: uuid.New(),
		Items: []CartItem{
			{ProductID: published.ID, Quantity: 2},
			{ProductID: unpublished.ID, Quantity: 1},
			{ProductID: missing, Quantity: 1},
		},
		ExpiresAt: now.Add(CartTTL),
	}
	products := map[uuid.UUID]Product{published.ID: published, unpublished.ID: unpublished}

	summary := BuildSummary(cart, ShopConfig{ID: uuid.New()}, products, nil, nil, nil, now)

	assert.Len(t, summary.Lines, 1)
	assert.Equal(t, published.ID, summary.Lines[0].ProductID)
	assert.Equal(t, "20", summary.Subtotal.String())
	assert.Equal(t, "20", summary.Total.String())
}

func TestBuildSummaryVariantOverridesPriceAndName(t *testing.T) {
	now := time.Now()
	product := Product{
		ID:        uuid.New(),
		Name:      "shirt",
		Price:     decimal.NewFromInt(30),
		Published: true,
	}
	variantPrice := decimal.NewFromInt(35)
	variant := Variant{
		ID:        uuid.New(),
		ProductID: product.ID,
		Name:      "shirt - XL",
		Price:     &variantPrice,
	}

	cart := CartRecord{
		ID: uuid.New(),
		Items: []CartItem{
			{ProductID: product.ID, VariantID: &variant.ID, Quantity: 2},
		},
		ExpiresAt: now.Add(CartTTL),
	}

	summary := BuildSummary(
		cart,
		ShopConfig{ID: uuid.New()},
		map[uuid.UUID]Product{product.ID: product},
		map[uuid.UUID]Variant{variant.ID: variant},
		nil,
		nil,
		now,
	)

	assert.Len(t, summary.Lines, 1)
	assert.Equal(t, "shirt - XL", summary.Lines[0].Name)
	assert.Equal(t, "35", summary.Lines[0].UnitPrice.String())
	assert.Equal(t, "70", summary.Subtotal.String())
}

func TestBuildSummaryTaxAppliesAfterCouponDiscount(t *testing.T) {
	now := time.Now()
	shopId := uuid.New()
	product := Product{
		ID:        uuid.New(),
		Name:      "kettle",
		Price:     decimal.NewFromInt(100),
		Published: true,
	}
	coupon := Coupon{
		ShopID: shopId,
		Code:   "SAVE10",
		Kind:   CouponKindFixed,
		Value:  decimal.NewFromInt(10),
		Active: true,
	}

	cart := CartRecord{
		ID:         uuid.New(),
		Items:      []CartItem{{ProductID: product.ID, Quantity: 1}},
		CouponCode: "SAVE10",
		ExpiresAt:  now.Add(CartTTL),
	}
	shop := ShopConfig{ID: shopId, TaxEnabled: true, TaxRate: decimal.NewFromInt(17)}

	summary := BuildSummary(
		cart,
		shop,
		map[uuid.UUID]Product{product.ID: product},
		nil,
		nil,
		&coupon,
		now,
	)

	assert.Equal(t, "100", summary.Subtotal.String())
	assert.Equal(t, "15.3", summary.Tax.String())
	assert.Equal(t, "10", summary.Discount.String())
	if assert.NotNil(t, summary.CouponDiscount) {
		assert.Equal(t, "10", summary.CouponDiscount.String())
	}
	assert.Nil(t, summary.CustomerDiscount)
	assert.Equal(t, "105.3", summary.Total.String())
}

func TestBuildSummaryInvalidCouponIgnored(t *testing.T) {
	now := time.Now()
	shopId := uuid.New()
	product := Product{
		ID:        uuid.New(),
		Name:      "kettle",
		Price:     decimal.NewFromInt(100),
		Published: true,
	}
	expired := now.Add(-time.Hour)
	coupon := Coupon{
		ShopID: shopId,
		Code:   "OLD",
		Kind:   CouponKindFixed,
		Value:  decimal.NewFromInt(10),
		Active: true,
		EndsAt: &expired,
	}

	cart := CartRecord{
		ID:         uuid.New(),
		Items:      []CartItem{{ProductID: product.ID, Quantity: 1}},
		CouponCode: "OLD",
		ExpiresAt:  now.Add(CartTTL),
	}

	summary := BuildSummary(
		cart,
		ShopConfig{ID: shopId},
		map[uuid.UUID]Product{product.ID: product},
		nil,
		nil,
		&coupon,
		now,
	)

	assert.Nil(t, summary.CouponDiscount)
	assert.Equal(t, "0", summary.Discount.String())
	assert.Equal(t, "100", summary.Total.String())
}

func TestBuildSummaryCustomerDiscountPerUnit(t *testing.T) {
	now := time.Now()
	product := Product{
		ID:        uuid.New(),
		Name:      "lamp",
		Price:     decimal.NewFromInt(50),
		Published: true,
	}
	shop := ShopConfig{
		ID: uuid.New(),
		Discounts: &DiscountSettings{
			Enabled: true,
			Tiers: []DiscountTier{
				{
					MinSpent:  decimal.NewFromInt(100),
					MinOrders: 1,
					Discount: DiscountRule{
						Kind:  RuleKindPercentage,
						Value: decimal.NewFromInt(10),
					},
				},
			},
		},
	}
	customer := CustomerStats{TotalSpent: decimal.NewFromInt(500), OrderCount: 3}

	cart := CartRecord{
		ID:        uuid.New(),
		Items:     []CartItem{{ProductID: product.ID, Quantity: 2}},
		ExpiresAt: now.Add(CartTTL),
	}

	summary := BuildSummary(
		cart,
		shop,
		map[uuid.UUID]Product{product.ID: product},
		nil,
		&customer,
		nil,
		now,
	)

	assert.Equal(t, "100", summary.Subtotal.String())
	if assert.NotNil(t, summary.CustomerDiscount) {
		assert.Equal(t, "10", summary.CustomerDiscount.String())
	}
	assert.Equal(t, "10", summary.Discount.String())
	assert.Equal(t, "90", summary.Total.String())
}

func TestBuildSummaryTotalFlooredAtZero(t *testing.T) {
	now := time.Now()
	shopId := uuid.New()
	product := Product{
		ID:        uuid.New(),
		Name:      "sticker",
		Price:     decimal.NewFromInt(5),
		Published: true,
	}
	coupon := Coupon{
		ShopID: shopId,
		Code:   "MEGA",
		Kind:   CouponKindFixed,
		Value:  decimal.NewFromInt(100),
		Active: true,
	}

	cart := CartRecord{
		ID:         uuid.New(),
		Items:      []CartItem{{ProductID: product.ID, Quantity: 1}},
		CouponCode: "MEGA",
		ExpiresAt:  now.Add(CartTTL),
	}

	summary := BuildSummary(
		cart,
		ShopConfig{ID: shopId},
		map[uuid.UUID]Product{product.ID: product},
		nil,
		nil,
		&coupon,
		now,
	)

	assert.Equal(t, "0", summary.Total.String())
}
