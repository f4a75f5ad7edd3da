package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/prakoso/storely/internal/cache"
	inErrors "github.com/prakoso/storely/internal/common/errors"
	"github.com/prakoso/storely/internal/log"
	"github.com/prakoso/storely/internal/repository"
	"github.com/prakoso/storely/storefront/internal/otel"
)

// ResolveShop maps a storefront path segment to a shop. Precedence is slug
// first, then id; the resolved row is cached for an hour.
func (s CartService) ResolveShop(c context.Context, slugOrId string) (repository.Shop, error) {
	c, span := otel.Tracer.Start(c, "CartService ResolveShop")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyShopBySlug, slugOrId)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ResolveShop").
		Str(log.KeyShopSlug, slugOrId).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding shop in cache").Logger()
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		shop := repository.Shop{}
		err = json.Unmarshal([]byte(jsonCache), &shop)
		if err == nil {
			logger.Info().Msg("found shop in cache")
			return shop, nil
		}
		err = fmt.Errorf("failed unmarshaling cached shop with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Info().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding shop in db").Logger()
	logger.Info().Msg("finding shop by slug")
	shop, err := s.queries.FindShopBySlug(c, slugOrId)
	if errors.Is(err, pgx.ErrNoRows) {
		shopId, parseErr := uuid.Parse(slugOrId)
		if parseErr != nil {
			logger.Info().Msg("shop not found by slug and value is not an id")
			return repository.Shop{}, inErrors.ErrShopNotFound
		}
		logger.Info().Msg("shop not found by slug, falling back to id")
		shop, err = s.queries.FindShopById(c, shopId)
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Shop{}, inErrors.ErrShopNotFound
		}
	}
	if err != nil {
		err = fmt.Errorf("failed finding shop with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Shop{}, err
	}
	logger = logger.With().Str(log.KeyShopID, shop.ID.String()).Logger()
	logger.Info().Msg("found shop in db")

	logger = logger.With().Str(log.KeyProcess, "inserting shop to cache").Logger()
	shopJson, err := json.Marshal(shop)
	if err == nil {
		err = s.cache.Set(c, cacheKey, shopJson, time.Hour).Err()
	}
	if err != nil {
		err = fmt.Errorf("failed caching shop with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return shop, nil
	}
	logger.Info().Msg("inserted shop to cache")

	return shop, nil
}
