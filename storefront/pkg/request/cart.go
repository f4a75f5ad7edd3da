package request

import (
	"github.com/google/uuid"
)

// CartIdentity carries the cart's owner: an anonymous session id from the
// cart_session cookie and/or an authenticated customer id from the
// x-customer-id header. The customer id wins when both are present.
type CartIdentity struct {
	SessionID  string
	CustomerID uuid.NullUUID
}

func (i CartIdentity) Empty() bool {
	return i.SessionID == "" && !i.CustomerID.Valid
}

type AddItem struct {
	ProductID uuid.UUID  `validate:"required"       json:"productId"`
	VariantID *uuid.UUID `validate:"omitempty"      json:"variantId"`
	Quantity  int32      `validate:"required,gte=1" json:"quantity"`
}

type UpdateCart struct {
	ProductID  *uuid.UUID `validate:"omitempty"                json:"productId"`
	Quantity   *int32     `validate:"omitempty"                json:"quantity"`
	VariantID  *uuid.UUID `validate:"omitempty"                json:"variantId"`
	CouponCode *string    `validate:"omitempty,max=64"         json:"couponCode"`
}
