package response

import (
	"github.com/prakoso/storely/internal/repository"
)

func NewMerchant(merchant repository.Merchant) Merchant {
	return Merchant{ID: merchant.ID, Name: merchant.Name, Email: merchant.Email}
}

func NewShop(shop repository.Shop) (Shop, error) {
	config, err := shop.Config()
	if err != nil {
		return Shop{}, err
	}
	resp := Shop{
		ID:         shop.ID,
		Name:       shop.Name,
		Slug:       shop.Slug,
		TaxEnabled: shop.TaxEnabled,
		TaxRate:    repository.DecimalFromNumeric(shop.TaxRate),
	}
	if config.Discounts != nil {
		resp.DiscountSettings = config.Discounts
	}
	return resp, nil
}

func NewProduct(product repository.Product) Product {
	resp := Product{
		ID:        product.ID,
		ShopID:    product.ShopID,
		Name:      product.Name,
		Price:     repository.DecimalFromNumeric(product.Price),
		Quantity:  product.Quantity,
		Published: product.Published,
	}
	if product.Sku.Valid {
		resp.Sku = product.Sku.String
	}
	if product.ComparePrice.Valid {
		comparePrice := repository.DecimalFromNumeric(product.ComparePrice)
		resp.ComparePrice = &comparePrice
	}
	return resp
}

func NewVariant(variant repository.ProductVariant) Variant {
	resp := Variant{
		ID:        variant.ID,
		ProductID: variant.ProductID,
		Name:      variant.Name,
	}
	if variant.Sku.Valid {
		resp.Sku = variant.Sku.String
	}
	if variant.Price.Valid {
		price := repository.DecimalFromNumeric(variant.Price)
		resp.Price = &price
	}
	if variant.Quantity.Valid {
		quantity := variant.Quantity.Int32
		resp.Quantity = &quantity
	}
	return resp
}

func NewCoupon(coupon repository.Coupon) Coupon {
	resp := Coupon{
		ID:           coupon.ID,
		ShopID:       coupon.ShopID,
		Code:         coupon.Code,
		DiscountType: coupon.DiscountType,
		Value:        repository.DecimalFromNumeric(coupon.Value),
		IsActive:     coupon.IsActive,
	}
	if coupon.MaxDiscount.Valid {
		maxDiscount := repository.DecimalFromNumeric(coupon.MaxDiscount)
		resp.MaxDiscount = &maxDiscount
	}
	if coupon.StartsAt.Valid {
		startsAt := coupon.StartsAt.Time
		resp.StartsAt = &startsAt
	}
	if coupon.EndsAt.Valid {
		endsAt := coupon.EndsAt.Time
		resp.EndsAt = &endsAt
	}
	return resp
}
