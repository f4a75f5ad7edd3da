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

type CouponController struct {
	service service.CouponService
}

func AttachCouponController(router *mux.Router, service service.CouponService) {
	controller := CouponController{service: service}

	router.HandleFunc("/shops/{shopId}/coupons", controller.CreateCoupon).
		Methods(http.MethodPost)
	router.HandleFunc("/shops/{shopId}/coupons", controller.FindCoupons).
		Methods(http.MethodGet)
	router.HandleFunc("/coupons/{couponId}", controller.DeleteCoupon).
		Methods(http.MethodDelete)
}

func (t CouponController) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CouponController CreateCoupon")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CouponController CreateCoupon").
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
	reqBody := request.CreateCoupon{}
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

	logger = logger.With().Str(log.KeyProcess, "creating coupon").Logger()
	c = logger.WithContext(c)
	coupon, err := t.service.CreateCoupon(c, merchantId, shopId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Str(log.KeyCouponID, coupon.ID.String()).Msg("created coupon")

	inHttp.WriteJsonResponse(c, w, http.StatusCreated, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "coupon created",
		"data":       response.NewCoupon(coupon),
	})
}

func (t CouponController) FindCoupons(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CouponController FindCoupons")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CouponController FindCoupons").
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

	logger = logger.With().Str(log.KeyProcess, "finding coupons").Logger()
	c = logger.WithContext(c)
	coupons, err := t.service.FindCoupons(c, merchantId, shopId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}

	body := make([]response.Coupon, 0, len(coupons))
	for _, coupon := range coupons {
		body = append(body, response.NewCoupon(coupon))
	}
	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "coupons found",
		"data":       body,
	})
}

func (t CouponController) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CouponController DeleteCoupon")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CouponController DeleteCoupon").
		Logger()

	merchantId, err := common.MerchantIdFromJwtToken(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(log.KeyMerchantID, merchantId.String()).Logger()

	couponId, err := uuid.Parse(mux.Vars(r)["couponId"])
	if err != nil {
		err = fmt.Errorf("failed parsing couponId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(log.KeyCouponID, couponId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "deleting coupon").Logger()
	c = logger.WithContext(c)
	if err := t.service.DeleteCoupon(c, merchantId, couponId); err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Msg("deleted coupon")

	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "coupon deleted",
	})
}
