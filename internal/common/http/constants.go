package http

const (
	HeaderContentType = "Content-Type"
	HeaderValueJson   = "application/json"

	HeaderCustomerID = "x-customer-id"
	HeaderRequestID  = "x-request-id"

	CookieCartSession = "cart_session"
)
