package response

import (
	"github.com/prakoso/storely/internal/pricing"
)

func NewCart(summary pricing.Summary) Cart {
	items := make([]CartItem, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		items = append(items, CartItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			Total:     line.Total,
		})
	}
	return Cart{
		ID:               summary.CartID,
		Items:            items,
		Subtotal:         summary.Subtotal,
		Tax:              summary.Tax,
		Shipping:         summary.Shipping,
		Discount:         summary.Discount,
		CustomerDiscount: summary.CustomerDiscount,
		CouponDiscount:   summary.CouponDiscount,
		Total:            summary.Total,
		CouponCode:       summary.CouponCode,
		ExpiresAt:        summary.ExpiresAt,
	}
}
