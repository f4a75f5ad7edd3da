package log

const (
	KeyAppName       = "app"
	KeyRequestID     = "requestId"
	KeyProcess       = "process"
	KeyTag           = "tag"
	KeyConfig        = "config"
	KeyEmail         = "email"
	KeyToken         = "token"
	KeyAuthToken     = "authToken"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"
	KeyDbURL         = "dbUrl"
	KeyCacheKey      = "cacheKey"
	KeyShopID        = "shopId"
	KeyShopSlug      = "shopSlug"
	KeyMerchantID    = "merchantId"
	KeyCustomerID    = "customerId"
	KeySessionID     = "sessionId"
	KeyCartID        = "cartId"
	KeyCartItems     = "cartItems"
	KeyCartStatus    = "cartStatus"
	KeyProductID     = "productId"
	KeyVariantID     = "variantId"
	KeyCouponID      = "couponId"
	KeyCouponCode    = "couponCode"
	KeyQuantity      = "quantity"
	KeySubtotal      = "subtotal"
	KeyTotal         = "total"
	KeyPathValues    = "pathValues"
	KeyRequest       = "request"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
)
