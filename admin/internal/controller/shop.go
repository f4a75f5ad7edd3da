package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/prakoso/storely/admin/internal/otel"
	"github.com/prakoso/storely/admin/internal/service"
	"github.com/prakoso/storely/admin/pkg/request"
	"github.com/prakoso/storely/admin/pkg/response"
	"github.com/prakoso/storely/internal/common"
	inErrors "github.com/prakoso/storely/internal/common/errors"
	inHttp "github.com/prakoso/storely/internal/common/http"
	"github.com/prakoso/storely/internal/log"
)

type ShopController struct {
	service service.ShopService
}

func AttachShopController(router *mux.Router, service service.ShopService) {
	controller := ShopController{service: service}

	router.HandleFunc("/shops", controller.CreateShop).Methods(http.MethodPost)
	router.HandleFunc("/shops", controller.FindShops).Methods(http.MethodGet)
	router.HandleFunc("/shops/{shopId}", controller.FindShop).Methods(http.MethodGet)
	router.HandleFunc("/shops/{shopId}", controller.UpdateShop).Methods(http.MethodPut)
}

func (t ShopController) FindShop(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController FindShop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController FindShop").
		Logger()

	merchantId, err := common.MerchantIdFromJwtToken(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(log.KeyMerchantID, merchantId.String()).Logger()

	shopId, err := uuid.Parse(mux.Vars(r)["shopId"])
	if err != nil {
		err = fmt.Errorf("failed parsing shopId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(log.KeyShopID, shopId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding shop").Logger()
	c = logger.WithContext(c)
	shop, err := t.service.FindShop(c, merchantId, shopId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}

	body, err := response.NewShop(shop)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "shop found",
		"data":       body,
	})
}

func (t ShopController) CreateShop(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController CreateShop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController CreateShop").
		Logger()

	merchantId, err := common.MerchantIdFromJwtToken(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(log.KeyMerchantID, merchantId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.CreateShop{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "creating shop").Logger()
	c = logger.WithContext(c)
	shop, err := t.service.CreateShop(c, merchantId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Str(log.KeyShopID, shop.ID.String()).Msg("created shop")

	body, err := response.NewShop(shop)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	inHttp.WriteJsonResponse(c, w, http.StatusCreated, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "shop created",
		"data":       body,
	})
}

func (t ShopController) FindShops(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController FindShops")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController FindShops").
		Logger()

	merchantId, err := common.MerchantIdFromJwtToken(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(log.KeyMerchantID, merchantId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding shops").Logger()
	c = logger.WithContext(c)
	shops, err := t.service.FindShops(c, merchantId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}

	body := make([]response.Shop, 0, len(shops))
	for _, shop := range shops {
		mapped, err := response.NewShop(shop)
		if err != nil {
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			writeDomainError(c, w, err)
			return
		}
		body = append(body, mapped)
	}
	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "shops found",
		"data":       body,
	})
}

func (t ShopController) UpdateShop(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController UpdateShop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopController UpdateShop").
		Logger()

	merchantId, err := common.MerchantIdFromJwtToken(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(log.KeyMerchantID, merchantId.String()).Logger()

	shopId, err := uuid.Parse(mux.Vars(r)["shopId"])
	if err != nil {
		err = fmt.Errorf("failed parsing shopId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(log.KeyShopID, shopId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.UpdateShop{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "updating shop").Logger()
	c = logger.WithContext(c)
	shop, err := t.service.UpdateShop(c, merchantId, shopId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Msg("updated shop")

	body, err := response.NewShop(shop)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "shop updated",
		"data":       body,
	})
}
