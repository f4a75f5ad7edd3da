package cache

const (
	KeyShopBySlug = "storefront:shops:slug:%s"
)
