package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeDiscount(t *testing.T) {
	tenPercent := DiscountRule{Kind: RuleKindPercentage, Value: decimal.NewFromInt(10)}
	twentyPercent := DiscountRule{Kind: RuleKindPercentage, Value: decimal.NewFromInt(20)}
	fixedFive := DiscountRule{Kind: RuleKindFixed, Value: decimal.NewFromInt(5)}

	tests := []struct {
		name      string
		settings  *DiscountSettings
		customer  *CustomerStats
		basePrice decimal.Decimal
		expected  string
	}{
		{
			name:      "given nil settings should return zero",
			settings:  nil,
			customer:  &CustomerStats{},
			basePrice: decimal.NewFromInt(100),
			expected:  "0",
		},
		{
			name: "given disabled settings should return zero",
			settings: &DiscountSettings{
				Enabled: false,
				Tiers:   []DiscountTier{{Discount: tenPercent}},
			},
			customer:  &CustomerStats{TotalSpent: decimal.NewFromInt(1000), OrderCount: 10},
			basePrice: decimal.NewFromInt(100),
			expected:  "0",
		},
		{
			name: "given nil customer should return zero",
			settings: &DiscountSettings{
				Enabled: true,
				Tiers:   []DiscountTier{{Discount: tenPercent}},
			},
			customer:  nil,
			basePrice: decimal.NewFromInt(100),
			expected:  "0",
		},
		{
			name: "given customer matching first tier should use first tier even when later tier also matches",
			settings: &DiscountSettings{
				Enabled: true,
				Tiers: []DiscountTier{
					{
						MinSpent:  decimal.NewFromInt(500),
						MinOrders: 5,
						Discount:  twentyPercent,
					},
					{
						MinSpent:  decimal.NewFromInt(100),
						MinOrders: 1,
						Discount:  tenPercent,
					},
				},
			},
			customer:  &CustomerStats{TotalSpent: decimal.NewFromInt(1000), OrderCount: 10},
			basePrice: decimal.NewFromInt(100),
			expected:  "20",
		},
		{
			name: "given customer below first tier should fall through to matching tier",
			settings: &DiscountSettings{
				Enabled: true,
				Tiers: []DiscountTier{
					{
						MinSpent:  decimal.NewFromInt(500),
						MinOrders: 5,
						Discount:  twentyPercent,
					},
					{
						MinSpent:  decimal.NewFromInt(100),
						MinOrders: 1,
						Discount:  tenPercent,
					},
				},
			},
			customer:  &CustomerStats{TotalSpent: decimal.NewFromInt(200), OrderCount: 2},
			basePrice: decimal.NewFromInt(100),
			expected:  "10",
		},
		{
			name: "given customer meeting spend but not orders should not match tier",
			settings: &DiscountSettings{
				Enabled: true,
				Tiers: []DiscountTier{
					{
						MinSpent:  decimal.NewFromInt(100),
						MinOrders: 5,
						Discount:  tenPercent,
					},
				},
			},
			customer:  &CustomerStats{TotalSpent: decimal.NewFromInt(1000), OrderCount: 1},
			basePrice: decimal.NewFromInt(100),
			expected:  "0",
		},
		{
			name: "given no matching tier should use base discount",
			settings: &DiscountSettings{
				Enabled: true,
				Tiers: []DiscountTier{
					{
						MinSpent:  decimal.NewFromInt(500),
						MinOrders: 5,
						Discount:  twentyPercent,
					},
				},
				Base: &BaseDiscount{Discount: fixedFive, ApplicableTo: "all"},
			},
			customer:  &CustomerStats{TotalSpent: decimal.NewFromInt(10), OrderCount: 0},
			basePrice: decimal.NewFromInt(100),
			expected:  "5",
		},
		{
			name: "given fixed discount above base price should clamp to base price",
			settings: &DiscountSettings{
				Enabled: true,
				Tiers: []DiscountTier{
					{
						Discount: DiscountRule{
							Kind:  RuleKindFixed,
							Value: decimal.NewFromInt(50),
						},
					},
				},
			},
			customer:  &CustomerStats{},
			basePrice: decimal.NewFromInt(30),
			expected:  "30",
		},
		{
			name: "given negative discount value should clamp to zero",
			settings: &DiscountSettings{
				Enabled: true,
				Tiers: []DiscountTier{
					{
						Discount: DiscountRule{
							Kind:  RuleKindFixed,
							Value: decimal.NewFromInt(-10),
						},
					},
				},
			},
			customer:  &CustomerStats{},
			basePrice: decimal.NewFromInt(30),
			expected:  "0",
		},
		{
			name: "given unknown rule kind should return zero",
			settings: &DiscountSettings{
				Enabled: true,
				Tiers: []DiscountTier{
					{
						Discount: DiscountRule{
							Kind:  RuleKind("bogo"),
							Value: decimal.NewFromInt(10),
						},
					},
				},
			},
			customer:  &CustomerStats{},
			basePrice: decimal.NewFromInt(30),
			expected:  "0",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := ComputeDiscount(test.settings, test.customer, test.basePrice)
			assert.Equal(t, test.expected, actual.String())
		})
	}
}
