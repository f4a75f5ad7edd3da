package constants

const (
	AppStorefrontService = "storefront-service"
	AppAdminService      = "admin-service"
	AppMainStorely       = "main storely"
	AudienceMerchant     = "audience-merchant"
)
