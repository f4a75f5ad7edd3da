package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/prakoso/storely/storefront/pkg/request"
)

func TestFirstValidationError(t *testing.T) {
	t.Run("given multiple field errors should keep only the first", func(t *testing.T) {
		validate := validator.New(validator.WithRequiredStructEnabled())
		err := validate.StructCtx(context.Background(), request.AddItem{})
		assert.Error(t, err)

		narrowed := firstValidationError(err)

		assert.Contains(t, narrowed.Error(), "ProductID")
		assert.NotContains(t, narrowed.Error(), "Quantity")
		assert.NotContains(t, narrowed.Error(), "\n")
	})

	t.Run("given a wrapped field error should unwrap it", func(t *testing.T) {
		validate := validator.New(validator.WithRequiredStructEnabled())
		err := validate.StructCtx(context.Background(), request.AddItem{})
		assert.Error(t, err)
		wrapped := errors.Join(errors.New("failed validating request body"), err)

		narrowed := firstValidationError(wrapped)

		assert.Contains(t, narrowed.Error(), "ProductID")
		assert.NotContains(t, narrowed.Error(), "Quantity")
	})

	t.Run("given a non-validation error should pass it through", func(t *testing.T) {
		err := errors.New("boom")

		assert.Equal(t, err, firstValidationError(err))
	})
}
