package request

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartIdentityEmpty(t *testing.T) {
	assert.True(t, CartIdentity{}.Empty())
	assert.False(t, CartIdentity{SessionID: "abc"}.Empty())
	assert.False(
		t,
		CartIdentity{CustomerID: uuid.NullUUID{UUID: uuid.New(), Valid: true}}.Empty(),
	)
}

// An absent couponCode leaves the coupon untouched while an explicit empty
// string clears it; the decoded pointer has to keep the two apart.
func TestUpdateCartCouponCodeDecoding(t *testing.T) {
	t.Run("given no couponCode field should decode nil", func(t *testing.T) {
		reqBody := UpdateCart{}
		err := json.Unmarshal([]byte(`{"quantity":2}`), &reqBody)

		assert.NoError(t, err)
		assert.Nil(t, reqBody.CouponCode)
	})

	t.Run("given empty couponCode should decode empty string", func(t *testing.T) {
		reqBody := UpdateCart{}
		err := json.Unmarshal([]byte(`{"couponCode":""}`), &reqBody)

		assert.NoError(t, err)
		if assert.NotNil(t, reqBody.CouponCode) {
			assert.Equal(t, "", *reqBody.CouponCode)
		}
	})

	t.Run("given couponCode should decode value", func(t *testing.T) {
		reqBody := UpdateCart{}
		err := json.Unmarshal([]byte(`{"couponCode":"SAVE10"}`), &reqBody)

		assert.NoError(t, err)
		if assert.NotNil(t, reqBody.CouponCode) {
			assert.Equal(t, "SAVE10", *reqBody.CouponCode)
		}
	})
}
