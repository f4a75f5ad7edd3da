package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/prakoso/storely/admin/internal/otel"
	"github.com/prakoso/storely/admin/pkg/request"
	"github.com/prakoso/storely/internal/common"
	inErrors "github.com/prakoso/storely/internal/common/errors"
	"github.com/prakoso/storely/internal/config"
	"github.com/prakoso/storely/internal/log"
	"github.com/prakoso/storely/internal/repository"
)

type MerchantService struct {
	queries *repository.Queries
	config  config.Application
}

func NewMerchantService(queries *repository.Queries, config config.Application) MerchantService {
	return MerchantService{queries: queries, config: config}
}

func (s MerchantService) Register(
	c context.Context,
	param request.Register,
) (repository.Merchant, error) {
	c, span := otel.Tracer.Start(c, "MerchantService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "MerchantService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Merchant{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting merchant").Logger()
	merchant, err := s.queries.InsertMerchant(c, repository.InsertMerchantParams{
		Name:     param.Name,
		Email:    param.Email,
		Password: string(hashed),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting merchant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Merchant{}, err
	}
	logger.Info().Str(log.KeyMerchantID, merchant.ID.String()).Msg("inserted merchant")

	return merchant, nil
}

func (s MerchantService) Login(c context.Context, param request.Login) (string, error) {
	c, span := otel.Tracer.Start(c, "MerchantService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "MerchantService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding merchant").Logger()
	merchant, err := s.queries.FindMerchantByEmail(c, param.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Info().Msg("merchant not found")
		return "", inErrors.ErrMerchantNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed finding merchant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Str(log.KeyMerchantID, merchant.ID.String()).Msg("found merchant")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	err = bcrypt.CompareHashAndPassword([]byte(merchant.Password), []byte(param.Password))
	if err != nil {
		logger.Info().Msg("password mismatch")
		return "", inErrors.ErrPasswordMismatch
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "creating token").Logger()
	token, err := common.CreateToken(merchant.ID, s.config.SecretKey)
	if err != nil {
		err = fmt.Errorf("failed creating token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("created token")

	return token, nil
}
