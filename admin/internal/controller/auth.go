package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/prakoso/storely/admin/internal/otel"
	"github.com/prakoso/storely/admin/internal/service"
	"github.com/prakoso/storely/admin/pkg/request"
	"github.com/prakoso/storely/admin/pkg/response"
	inErrors "github.com/prakoso/storely/internal/common/errors"
	inHttp "github.com/prakoso/storely/internal/common/http"
	"github.com/prakoso/storely/internal/log"
)

type AuthController struct {
	service service.MerchantService
}

func AttachAuthController(router *mux.Router, service service.MerchantService) {
	controller := AuthController{service: service}

	sub := router.PathPrefix("/api/admin/auth").Subrouter()
	sub.HandleFunc("/register", controller.Register).Methods(http.MethodPost)
	sub.HandleFunc("/login", controller.Login).Methods(http.MethodPost)
}

func (t AuthController) Register(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AuthController Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AuthController Register").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.Register{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "registering merchant").Logger()
	c = logger.WithContext(c)
	merchant, err := t.service.Register(c, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Str(log.KeyMerchantID, merchant.ID.String()).Msg("registered merchant")

	inHttp.WriteJsonResponse(c, w, http.StatusCreated, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "merchant registered",
		"data":       response.NewMerchant(merchant),
	})
}

func (t AuthController) Login(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AuthController Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AuthController Login").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.Login{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "logging in merchant").Logger()
	c = logger.WithContext(c)
	token, err := t.service.Login(c, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeDomainError(c, w, err)
		return
	}
	logger.Info().Msg("merchant logged in")

	inHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "login succeed",
		"data":       response.Login{Token: token},
	})
}

func writeFailed(c context.Context, w http.ResponseWriter, statusCode int, err error) {
	inHttp.WriteJsonResponse(c, w, statusCode, map[string]interface{}{
		"status":     "failed",
		"statusCode": statusCode,
		"message":    err.Error(),
	})
}

// writeDomainError maps domain errors to status codes. Credentials problems
// are 401, ownership 403, absence 404, anything unexpected a generic 500.
func writeDomainError(c context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inErrors.ErrMerchantNotFound),
		errors.Is(err, inErrors.ErrPasswordMismatch):
		writeFailed(c, w, http.StatusUnauthorized, errors.New("invalid email or password"))
	case errors.Is(err, inErrors.ErrNotShopOwner):
		writeFailed(c, w, http.StatusForbidden, err)
	case errors.Is(err, inErrors.ErrShopNotFound),
		errors.Is(err, inErrors.ErrProductNotFound),
		errors.Is(err, inErrors.ErrVariantNotFound),
		errors.Is(err, inErrors.ErrCouponNotFound):
		writeFailed(c, w, http.StatusNotFound, err)
	default:
		writeFailed(c, w, http.StatusInternalServerError, errors.New("Internal server error"))
	}
}
