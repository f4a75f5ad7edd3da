package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/prakoso/storely/internal/common/errors"
	"github.com/prakoso/storely/storefront/pkg/request"
)

var (
	seedShopSlug      = "demo"
	seedShopId        = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedCustomerId    = uuid.MustParse("55555555-5555-5555-5555-555555555555")
	seedProductId     = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	seedUnpublishedId = uuid.MustParse("66666666-6666-6666-6666-666666666666")
	seedVariantId     = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	seedOutletSlug    = "outlet"
	seedOutletMugId   = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
)

func sessionIdentity(sessionId string) request.CartIdentity {
	return request.CartIdentity{SessionID: sessionId}
}

func cartExpiry(t *testing.T, c context.Context, env testEnv, cartId uuid.UUID) time.Time {
	t.Helper()
	var expiresAt time.Time
	err := env.pool.
		QueryRow(c, "SELECT expires_at FROM carts WHERE id = $1", cartId).
		Scan(&expiresAt)
	if err != nil {
		t.Fatalf("failed reading cart expiry with error: %s", err)
	}
	return expiresAt
}

func TestCartService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	c := context.Background()
	env := setup(t, c)
	defer teardown(t, c, env)
	service := env.service

	t.Run("empty identity returns empty summary without a cart", func(t *testing.T) {
		cart, err := service.GetCart(c, seedShopSlug, request.CartIdentity{})

		assert.NoError(t, err)
		assert.Equal(t, uuid.Nil, cart.ID)
		assert.Empty(t, cart.Items)
		assert.Equal(t, "0", cart.Total.String())
	})

	t.Run("unknown shop slug is rejected", func(t *testing.T) {
		_, err := service.GetCart(c, "no-such-shop", sessionIdentity(uuid.NewString()))

		assert.ErrorIs(t, err, inErrors.ErrShopNotFound)
	})

	t.Run("add item then get prices the cart with tax", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())

		cartId, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  1,
		})
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, cartId)

		cart, err := service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Equal(t, cartId, cart.ID)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, "100", cart.Subtotal.String())
		assert.Equal(t, "17", cart.Tax.String())
		assert.Equal(t, "117", cart.Total.String())
	})

	t.Run("adding the same line twice merges quantities", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())

		_, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  2,
		})
		assert.NoError(t, err)
		_, err = service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  3,
		})
		assert.NoError(t, err)

		cart, err := service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.EqualValues(t, 5, cart.Items[0].Quantity)
		assert.Equal(t, "500", cart.Subtotal.String())
	})

	t.Run("variant line uses variant price and stock", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())

		_, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			VariantID: &seedVariantId,
			Quantity:  2,
		})
		assert.NoError(t, err)

		cart, err := service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, "35", cart.Items[0].Price.String())
		assert.Equal(t, "70", cart.Subtotal.String())

		_, err = service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			VariantID: &seedVariantId,
			Quantity:  9,
		})
		assert.ErrorIs(t, err, inErrors.ErrOutOfStock)
	})

	t.Run("unpublished product is not addable", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())

		_, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedUnpublishedId,
			Quantity:  1,
		})
		assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	})

	t.Run("coupon lifecycle on update", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())
		code := "SAVE10"
		expiredCode := "OLDCODE"
		unknownCode := "NOPE"
		emptyCode := ""

		_, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  1,
		})
		assert.NoError(t, err)

		_, err = service.UpdateCart(c, seedShopSlug, ident, request.UpdateCart{
			CouponCode: &code,
		})
		assert.NoError(t, err)

		cart, err := service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Equal(t, "SAVE10", cart.CouponCode)
		if assert.NotNil(t, cart.CouponDiscount) {
			assert.Equal(t, "10", cart.CouponDiscount.String())
		}
		assert.Equal(t, "15.3", cart.Tax.String())
		assert.Equal(t, "105.3", cart.Total.String())

		_, err = service.UpdateCart(c, seedShopSlug, ident, request.UpdateCart{
			CouponCode: &expiredCode,
		})
		assert.ErrorIs(t, err, inErrors.ErrCouponExpired)

		_, err = service.UpdateCart(c, seedShopSlug, ident, request.UpdateCart{
			CouponCode: &unknownCode,
		})
		assert.ErrorIs(t, err, inErrors.ErrCouponNotFound)

		_, err = service.UpdateCart(c, seedShopSlug, ident, request.UpdateCart{
			CouponCode: &emptyCode,
		})
		assert.NoError(t, err)

		cart, err = service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Equal(t, "", cart.CouponCode)
		assert.Nil(t, cart.CouponDiscount)
		assert.Equal(t, "117", cart.Total.String())
	})

	t.Run("update quantity is idempotent and zero removes", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())

		_, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  1,
		})
		assert.NoError(t, err)

		quantity := int32(4)
		for range 2 {
			_, err = service.UpdateCart(c, seedShopSlug, ident, request.UpdateCart{
				ProductID: &seedProductId,
				Quantity:  &quantity,
			})
			assert.NoError(t, err)
		}
		cart, err := service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.EqualValues(t, 4, cart.Items[0].Quantity)

		zero := int32(0)
		_, err = service.UpdateCart(c, seedShopSlug, ident, request.UpdateCart{
			ProductID: &seedProductId,
			Quantity:  &zero,
		})
		assert.NoError(t, err)

		cart, err = service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("removing an absent line is a no-op", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())

		_, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  1,
		})
		assert.NoError(t, err)

		_, err = service.RemoveItem(c, seedShopSlug, ident, uuid.New(), nil)
		assert.NoError(t, err)

		cart, err := service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("shops sharing a coupon code each redeem their own", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())
		code := "SAVE10"

		_, err := service.AddItem(c, seedOutletSlug, ident, request.AddItem{
			ProductID: seedOutletMugId,
			Quantity:  1,
		})
		assert.NoError(t, err)

		_, err = service.UpdateCart(c, seedOutletSlug, ident, request.UpdateCart{
			CouponCode: &code,
		})
		assert.NoError(t, err)

		cart, err := service.GetCart(c, seedOutletSlug, ident)
		assert.NoError(t, err)
		assert.Equal(t, "SAVE10", cart.CouponCode)
		if assert.NotNil(t, cart.CouponDiscount) {
			assert.Equal(t, "10", cart.CouponDiscount.String())
		}
		assert.Equal(t, "40", cart.Total.String())
	})

	t.Run("mutating writes extend the cart expiry", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())

		cartId, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  1,
		})
		assert.NoError(t, err)
		afterAdd := cartExpiry(t, c, env, cartId)

		quantity := int32(2)
		_, err = service.UpdateCart(c, seedShopSlug, ident, request.UpdateCart{
			ProductID: &seedProductId,
			Quantity:  &quantity,
		})
		assert.NoError(t, err)
		afterUpdate := cartExpiry(t, c, env, cartId)

		assert.True(t, afterUpdate.After(afterAdd),
			"expected expiry %s to move past %s", afterUpdate, afterAdd)
	})

	t.Run("removing an item keeps the cart expiry", func(t *testing.T) {
		ident := sessionIdentity(uuid.NewString())

		cartId, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  1,
		})
		assert.NoError(t, err)
		before := cartExpiry(t, c, env, cartId)

		_, err = service.RemoveItem(c, seedShopSlug, ident, seedProductId, nil)
		assert.NoError(t, err)
		after := cartExpiry(t, c, env, cartId)

		assert.True(t, before.Equal(after),
			"expected expiry %s to stay %s", after, before)
	})

	t.Run("expired cart is absent on read and replaced on write", func(t *testing.T) {
		sessionId := uuid.NewString()
		ident := sessionIdentity(sessionId)

		var staleId uuid.UUID
		err := env.pool.QueryRow(
			c,
			`INSERT INTO carts (shop_id, session_id, items, expires_at)
			 VALUES ($1, $2, '[]', now() - interval '1 minute')
			 RETURNING id`,
			seedShopId,
			sessionId,
		).Scan(&staleId)
		if err != nil {
			t.Fatalf("failed inserting expired cart with error: %s", err)
		}

		cart, err := service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Equal(t, uuid.Nil, cart.ID)
		assert.Empty(t, cart.Items)

		cartId, err := service.AddItem(c, seedShopSlug, ident, request.AddItem{
			ProductID: seedProductId,
			Quantity:  1,
		})
		assert.NoError(t, err)
		assert.NotEqual(t, staleId, cartId)

		cart, err = service.GetCart(c, seedShopSlug, ident)
		assert.NoError(t, err)
		assert.Equal(t, cartId, cart.ID)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("session cart is claimed by the customer and earns the tier discount", func(t *testing.T) {
		sessionId := uuid.NewString()
		anonymous := sessionIdentity(sessionId)
		authenticated := request.CartIdentity{
			SessionID:  sessionId,
			CustomerID: uuid.NullUUID{UUID: seedCustomerId, Valid: true},
		}

		_, err := service.AddItem(c, seedShopSlug, anonymous, request.AddItem{
			ProductID: seedProductId,
			Quantity:  1,
		})
		assert.NoError(t, err)

		cart, err := service.GetCart(c, seedShopSlug, authenticated)
		assert.NoError(t, err)
		if assert.NotNil(t, cart.CustomerDiscount) {
			assert.Equal(t, "10", cart.CustomerDiscount.String())
		}
		assert.Equal(t, "107", cart.Total.String())

		cartByCustomer, err := service.GetCart(c, seedShopSlug, request.CartIdentity{
			CustomerID: uuid.NullUUID{UUID: seedCustomerId, Valid: true},
		})
		assert.NoError(t, err)
		assert.Equal(t, cart.ID, cartByCustomer.ID)
	})
}
