package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMergeItem(t *testing.T) {
	productId := uuid.New()
	variantId := uuid.New()

	t.Run("given same line should increment quantity", func(t *testing.T) {
		items := []CartItem{{ProductID: productId, Quantity: 2}}

		items = MergeItem(items, CartItem{ProductID: productId, Quantity: 3})

		assert.Len(t, items, 1)
		assert.EqualValues(t, 5, items[0].Quantity)
	})

	t.Run("given same product with different variant should append line", func(t *testing.T) {
		items := []CartItem{{ProductID: productId, Quantity: 2}}

		items = MergeItem(items, CartItem{ProductID: productId, VariantID: &variantId, Quantity: 3})

		assert.Len(t, items, 2)
		assert.EqualValues(t, 2, items[0].Quantity)
		assert.EqualValues(t, 3, items[1].Quantity)
	})

	t.Run("given same variant line should increment quantity", func(t *testing.T) {
		items := []CartItem{{ProductID: productId, VariantID: &variantId, Quantity: 1}}
		sameVariant := variantId

		items = MergeItem(
			items,
			CartItem{ProductID: productId, VariantID: &sameVariant, Quantity: 4},
		)

		assert.Len(t, items, 1)
		assert.EqualValues(t, 5, items[0].Quantity)
	})
}

func TestSetQuantity(t *testing.T) {
	productId := uuid.New()

	t.Run("given existing line should replace quantity", func(t *testing.T) {
		items := []CartItem{{ProductID: productId, Quantity: 2}}

		items = SetQuantity(items, productId, nil, 7)

		assert.Len(t, items, 1)
		assert.EqualValues(t, 7, items[0].Quantity)
	})

	t.Run("given same quantity twice should be idempotent", func(t *testing.T) {
		items := []CartItem{{ProductID: productId, Quantity: 2}}

		items = SetQuantity(items, productId, nil, 7)
		items = SetQuantity(items, productId, nil, 7)

		assert.Len(t, items, 1)
		assert.EqualValues(t, 7, items[0].Quantity)
	})

	t.Run("given zero quantity should remove line", func(t *testing.T) {
		items := []CartItem{{ProductID: productId, Quantity: 2}}

		items = SetQuantity(items, productId, nil, 0)

		assert.Empty(t, items)
	})

	t.Run("given absent line should not change items", func(t *testing.T) {
		items := []CartItem{{ProductID: productId, Quantity: 2}}

		items = SetQuantity(items, uuid.New(), nil, 7)

		assert.Len(t, items, 1)
		assert.EqualValues(t, 2, items[0].Quantity)
	})
}

func TestRemoveItem(t *testing.T) {
	productId := uuid.New()
	variantId := uuid.New()

	t.Run("given existing line should remove it", func(t *testing.T) {
		items := []CartItem{
			{ProductID: productId, Quantity: 2},
			{ProductID: productId, VariantID: &variantId, Quantity: 1},
		}

		items = RemoveItem(items, productId, nil)

		assert.Len(t, items, 1)
		assert.NotNil(t, items[0].VariantID)
	})

	t.Run("given absent line should be a no-op", func(t *testing.T) {
		items := []CartItem{{ProductID: productId, Quantity: 2}}

		items = RemoveItem(items, uuid.New(), nil)

		assert.Len(t, items, 1)
	})
}

func TestValidateItems(t *testing.T) {
	t.Run("given valid items should pass", func(t *testing.T) {
		items := []CartItem{{ProductID: uuid.New(), Quantity: 1}}
		assert.NoError(t, ValidateItems(items))
	})

	t.Run("given zero quantity should fail", func(t *testing.T) {
		items := []CartItem{{ProductID: uuid.New(), Quantity: 0}}
		assert.ErrorIs(t, ValidateItems(items), ErrInvalidCartItem)
	})

	t.Run("given nil product id should fail", func(t *testing.T) {
		items := []CartItem{{ProductID: uuid.Nil, Quantity: 1}}
		assert.ErrorIs(t, ValidateItems(items), ErrInvalidCartItem)
	})
}

func TestCartStatus(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusActive, CartStatus(now.Add(time.Minute), now))
	assert.Equal(t, StatusExpired, CartStatus(now.Add(-time.Minute), now))
	assert.Equal(t, StatusExpired, CartStatus(now, now))
}
