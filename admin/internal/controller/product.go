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

type ProductController struct {
	service service.ProductService
}

func AttachProductController(router *mux.Router, service service.ProductService) {
	controller := ProductController{service: service}

	router.HandleFunc("/shops/{shopId}/products", controller.CreateProduct).
		Methods(http.MethodPost)
	router.HandleFunc("/shops/{shopId}/products", controller.FindProducts).
		Methods(http.MethodGet)
	router.HandleFunc("/products/{productId}", controller.FindProduct).
		Methods(http.MethodGet)
	router.HandleFunc("/products/{productId}", controller.UpdateProduct).
		Methods(http.MethodPut)
	router.HandleFunc("/products/{productId}/variants", controller.CreateVariant).
		Methods(http.MethodPost)
}

func (t ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController CreateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController CreateProduct").
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
	reqBody := request.CreateProduct{}
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

	logger = logger.With().Str(log.KeyProcess, "creating product").Logger()
	c = logger.WithContext(c)
	product, err := t.service.CreateProduct(c, merchantId, shopId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Str(log.KeyProductID, product.ID.String()).Msg("created product")

	inHttp.WriteJsonResponse(c, w, http.StatusCreated, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "product created",
		"data":       response.NewProduct(product),
	})
}

func (t ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProducts").
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

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	c = logger.WithContext(c)
	products, err := t.service.FindProducts(c, merchantId, shopId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}

	body := make([]response.Product, 0, len(products))
	for _, product := range products {
		body = append(body, response.NewProduct(product))
	}
	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data":       body,
	})
}

func (t ProductController) FindProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProduct").
		Logger()

	merchantId, err := common.MerchantIdFromJwtToken(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(log.KeyMerchantID, merchantId.String()).Logger()

	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing productId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	c = logger.WithContext(c)
	product, err := t.service.FindProduct(c, merchantId, productId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}

	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "product found",
		"data":       response.NewProduct(product),
	})
}

func (t ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateProduct").
		Logger()

	merchantId, err := common.MerchantIdFromJwtToken(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(log.KeyMerchantID, merchantId.String()).Logger()

	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing productId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.UpdateProduct{}
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

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	c = logger.WithContext(c)
	product, err := t.service.UpdateProduct(c, merchantId, productId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Msg("updated product")

	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "product updated",
		"data":       response.NewProduct(product),
	})
}

func (t ProductController) CreateVariant(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController CreateVariant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController CreateVariant").
		Logger()

	merchantId, err := common.MerchantIdFromJwtToken(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(log.KeyMerchantID, merchantId.String()).Logger()

	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing productId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.CreateVariant{}
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

	logger = logger.With().Str(log.KeyProcess, "creating variant").Logger()
	c = logger.WithContext(c)
	variant, err := t.service.CreateVariant(c, merchantId, productId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Str(log.KeyVariantID, variant.ID.String()).Msg("created variant")

	inHttp.WriteJsonResponse(c, w, http.StatusCreated, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "variant created",
		"data":       response.NewVariant(variant),
	})
}
