package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prakoso/storely/admin/internal/otel"
	"github.com/prakoso/storely/admin/pkg/request"
	"github.com/prakoso/storely/internal/cache"
	inErrors "github.com/prakoso/storely/internal/common/errors"
	"github.com/prakoso/storely/internal/log"
	"github.com/prakoso/storely/internal/pricing"
	"github.com/prakoso/storely/internal/repository"
)

type ShopService struct {
	queries *repository.Queries
	cache   *redis.Client
}

func NewShopService(queries *repository.Queries, cache *redis.Client) ShopService {
	return ShopService{queries: queries, cache: cache}
}

func (s ShopService) CreateShop(
	c context.Context,
	merchantId uuid.UUID,
	param request.CreateShop,
) (repository.Shop, error) {
	c, span := otel.Tracer.Start(c, "ShopService CreateShop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService CreateShop").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyShopSlug, param.Slug).
		Logger()

	settings, err := marshalDiscountSettings(param.DiscountSettings)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Shop{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting shop").Logger()
	shop, err := s.queries.InsertShop(c, repository.InsertShopParams{
		MerchantID:       merchantId,
		Name:             param.Name,
		Slug:             param.Slug,
		TaxEnabled:       param.TaxEnabled,
		TaxRate:          repository.NumericFromDecimal(param.TaxRate),
		DiscountSettings: settings,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting shop with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Shop{}, err
	}
	logger.Info().Str(log.KeyShopID, shop.ID.String()).Msg("inserted shop")

	return shop, nil
}

func (s ShopService) FindShops(
	c context.Context,
	merchantId uuid.UUID,
) ([]repository.Shop, error) {
	c, span := otel.Tracer.Start(c, "ShopService FindShops")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService FindShops").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProcess, "finding shops").
		Logger()

	shops, err := s.queries.FindShopsByMerchantId(c, merchantId)
	if err != nil {
		err = fmt.Errorf("failed finding shops with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d shops", len(shops))

	return shops, nil
}

func (s ShopService) FindShop(
	c context.Context,
	merchantId uuid.UUID,
	shopId uuid.UUID,
) (repository.Shop, error) {
	c, span := otel.Tracer.Start(c, "ShopService FindShop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService FindShop").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyShopID, shopId.String()).
		Str(log.KeyProcess, "finding shop").
		Logger()
	c = logger.WithContext(c)

	shop, err := s.ownedShop(c, merchantId, shopId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Shop{}, err
	}
	logger.Info().Msg("found shop")

	return shop, nil
}

// UpdateShop writes the new settings and drops the storefront's cached copy so
// the next cart request prices against the fresh configuration.
func (s ShopService) UpdateShop(
	c context.Context,
	merchantId uuid.UUID,
	shopId uuid.UUID,
	param request.UpdateShop,
) (repository.Shop, error) {
	c, span := otel.Tracer.Start(c, "ShopService UpdateShop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService UpdateShop").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyShopID, shopId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking ownership").Logger()
	c = logger.WithContext(c)
	if _, err := s.ownedShop(c, merchantId, shopId); err != nil {
		return repository.Shop{}, err
	}

	settings, err := marshalDiscountSettings(param.DiscountSettings)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Shop{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating shop").Logger()
	shop, err := s.queries.UpdateShop(c, repository.UpdateShopParams{
		ID:               shopId,
		Name:             param.Name,
		TaxEnabled:       param.TaxEnabled,
		TaxRate:          repository.NumericFromDecimal(param.TaxRate),
		DiscountSettings: settings,
	})
	if err != nil {
		err = fmt.Errorf("failed updating shop with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Shop{}, err
	}
	logger.Info().Msg("updated shop")

	logger = logger.With().Str(log.KeyProcess, "invalidating shop cache").Logger()
	cacheKey := fmt.Sprintf(cache.KeyShopBySlug, shop.Slug)
	if err := s.cache.Del(c, cacheKey).Err(); err != nil {
		err = fmt.Errorf("failed invalidating shop cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Info().Err(err).Str(log.KeyCacheKey, cacheKey).Msg(err.Error())
		return shop, nil
	}
	logger.Info().Str(log.KeyCacheKey, cacheKey).Msg("invalidated shop cache")

	return shop, nil
}

// ownedShop loads the shop and rejects merchants that do not own it.
func (s ShopService) ownedShop(
	c context.Context,
	merchantId uuid.UUID,
	shopId uuid.UUID,
) (repository.Shop, error) {
	shop, err := s.queries.FindShopById(c, shopId)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.Shop{}, inErrors.ErrShopNotFound
	}
	if err != nil {
		return repository.Shop{}, fmt.Errorf("failed finding shop with error=%w", err)
	}
	if shop.MerchantID != merchantId {
		return repository.Shop{}, inErrors.ErrNotShopOwner
	}
	return shop, nil
}

func marshalDiscountSettings(settings *pricing.DiscountSettings) ([]byte, error) {
	if settings == nil {
		return nil, nil
	}
	marshaled, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed marshaling discount settings with error=%w", err)
	}
	return marshaled, nil
}
