package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/prakoso/storely/internal/common/errors"
	inHttp "github.com/prakoso/storely/internal/common/http"
	"github.com/prakoso/storely/internal/log"
	"github.com/prakoso/storely/internal/pricing"
	"github.com/prakoso/storely/storefront/internal/otel"
	"github.com/prakoso/storely/storefront/internal/service"
	"github.com/prakoso/storely/storefront/pkg/request"
	"github.com/prakoso/storely/storefront/pkg/response"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(router *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	sub := router.PathPrefix("/api/storefront").Subrouter()
	sub.HandleFunc("/{slug}/cart", controller.GetCart).Methods(http.MethodGet)
	sub.HandleFunc("/{slug}/cart", controller.AddItem).Methods(http.MethodPost)
	sub.HandleFunc("/{slug}/cart", controller.UpdateCart).Methods(http.MethodPut)
	sub.HandleFunc("/{slug}/cart", controller.RemoveItem).Methods(http.MethodDelete)
}

func (t CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController GetCart").
		Logger()

	ident, err := cartIdentity(r)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, err)
		return
	}

	c = logger.WithContext(c)
	cart, err := t.service.GetCart(c, mux.Vars(r)["slug"], ident)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailure(c, w, err)
		return
	}

	inHttp.WriteJsonResponse(c, w, http.StatusOK, cart)
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Logger()

	ident, err := cartIdentity(r)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, err)
		return
	}
	if ident.SessionID == "" && !ident.CustomerID.Valid {
		ident.SessionID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     inHttp.CookieCartSession,
			Value:    ident.SessionID,
			Path:     "/",
			MaxAge:   int(pricing.CartTTL / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		logger.Info().Str(log.KeySessionID, ident.SessionID).Msg("issued cart session")
	}

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	logger = logger.With().Str(log.KeyProcess, "adding item").Logger()
	c = logger.WithContext(c)
	cartId, err := t.service.AddItem(c, mux.Vars(r)["slug"], ident, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailure(c, w, err)
		return
	}
	logger.Info().Str(log.KeyCartID, cartId.String()).Msg("added item to cart")

	inHttp.WriteJsonResponse(c, w, http.StatusOK, response.CartMutation{
		Success: true,
		Message: "item added to cart",
		CartID:  cartId,
	})
}

func (t CartController) UpdateCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateCart").
		Logger()

	ident, err := cartIdentity(r)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.UpdateCart{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	logger = logger.With().Str(log.KeyProcess, "updating cart").Logger()
	c = logger.WithContext(c)
	cartId, err := t.service.UpdateCart(c, mux.Vars(r)["slug"], ident, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailure(c, w, err)
		return
	}
	logger.Info().Str(log.KeyCartID, cartId.String()).Msg("updated cart")

	inHttp.WriteJsonResponse(c, w, http.StatusOK, response.CartMutation{
		Success: true,
		Message: "cart updated",
		CartID:  cartId,
	})
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Logger()

	ident, err := cartIdentity(r)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "parsing query params").Logger()
	productIdValue := r.URL.Query().Get("productId")
	if productIdValue == "" {
		err := errors.New("productId is required")
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, err)
		return
	}
	productId, err := uuid.Parse(productIdValue)
	if err != nil {
		err = fmt.Errorf("failed parsing productId=%s with error=%w", productIdValue, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, http.StatusBadRequest, err)
		return
	}
	var variantId *uuid.UUID
	if value := r.URL.Query().Get("variantId"); value != "" {
		parsed, err := uuid.Parse(value)
		if err != nil {
			err = fmt.Errorf("failed parsing variantId=%s with error=%w", value, err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			writeError(c, w, http.StatusBadRequest, err)
			return
		}
		variantId = &parsed
	}

	logger = logger.With().
		Str(log.KeyProcess, "removing item").
		Str(log.KeyProductID, productId.String()).
		Logger()
	c = logger.WithContext(c)
	_, err = t.service.RemoveItem(c, mux.Vars(r)["slug"], ident, productId, variantId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailure(c, w, err)
		return
	}
	logger.Info().Msg("removed item from cart")

	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"message": "item removed from cart",
	})
}

func cartIdentity(r *http.Request) (request.CartIdentity, error) {
	ident := request.CartIdentity{}
	if cookie, err := r.Cookie(inHttp.CookieCartSession); err == nil && cookie.Value != "" {
		ident.SessionID = cookie.Value
	}
	if header := r.Header.Get(inHttp.HeaderCustomerID); header != "" {
		customerId, err := uuid.Parse(header)
		if err != nil {
			return request.CartIdentity{}, fmt.Errorf(
				"failed parsing customer id=%s with error=%w",
				header,
				err,
			)
		}
		ident.CustomerID = uuid.NullUUID{UUID: customerId, Valid: true}
	}
	return ident, nil
}

// writeFailure maps domain errors to status codes: absence is 404, business
// rule violations are 400, anything unexpected is a generic 500.
func writeFailure(c context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inErrors.ErrShopNotFound),
		errors.Is(err, inErrors.ErrProductNotFound),
		errors.Is(err, inErrors.ErrVariantNotFound),
		errors.Is(err, inErrors.ErrCartNotFound),
		errors.Is(err, inErrors.ErrCouponNotFound):
		writeError(c, w, http.StatusNotFound, err)
	case errors.Is(err, inErrors.ErrOutOfStock),
		errors.Is(err, inErrors.ErrCouponInvalid),
		errors.Is(err, inErrors.ErrCouponNotYetValid),
		errors.Is(err, inErrors.ErrCouponExpired):
		writeError(c, w, http.StatusBadRequest, err)
	default:
		writeError(c, w, http.StatusInternalServerError, errors.New("Internal server error"))
	}
}

// firstValidationError narrows a validator error down to its first field
// error so the response carries one message instead of the joined list.
func firstValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return errors.New(fieldErrors[0].Error())
	}
	return err
}

func writeError(c context.Context, w http.ResponseWriter, statusCode int, err error) {
	inHttp.WriteJsonResponse(c, w, statusCode, map[string]interface{}{
		"success": false,
		"message": err.Error(),
	})
}
