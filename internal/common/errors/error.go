package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth         = errors.New("missing authorization")
	ErrTokenInvalid      = errors.New("invalid token")
	ErrShopNotFound      = errors.New("shop not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("product variant not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponInvalid     = errors.New("coupon is not valid for this shop")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrOutOfStock        = errors.New("insufficient inventory")
	ErrMerchantNotFound  = errors.New("merchant not found")
	ErrPasswordMismatch  = errors.New("password mismatch")
	ErrNotShopOwner      = errors.New("shop does not belong to merchant")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
