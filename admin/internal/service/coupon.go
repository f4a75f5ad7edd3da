package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/prakoso/storely/admin/internal/otel"
	"github.com/prakoso/storely/admin/pkg/request"
	inErrors "github.com/prakoso/storely/internal/common/errors"
	"github.com/prakoso/storely/internal/log"
	"github.com/prakoso/storely/internal/repository"
)

type CouponService struct {
	queries *repository.Queries
	shops   ShopService
}

func NewCouponService(queries *repository.Queries, shops ShopService) CouponService {
	return CouponService{queries: queries, shops: shops}
}

func (s CouponService) CreateCoupon(
	c context.Context,
	merchantId uuid.UUID,
	shopId uuid.UUID,
	param request.CreateCoupon,
) (repository.Coupon, error) {
	c, span := otel.Tracer.Start(c, "CouponService CreateCoupon")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CouponService CreateCoupon").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyShopID, shopId.String()).
		Str(log.KeyCouponCode, param.Code).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking ownership").Logger()
	c = logger.WithContext(c)
	if _, err := s.shops.ownedShop(c, merchantId, shopId); err != nil {
		return repository.Coupon{}, err
	}

	startsAt := pgtype.Timestamptz{}
	if param.StartsAt != nil {
		startsAt = pgtype.Timestamptz{Time: *param.StartsAt, Valid: true}
	}
	endsAt := pgtype.Timestamptz{}
	if param.EndsAt != nil {
		endsAt = pgtype.Timestamptz{Time: *param.EndsAt, Valid: true}
	}

	logger = logger.With().Str(log.KeyProcess, "inserting coupon").Logger()
	coupon, err := s.queries.InsertCoupon(c, repository.InsertCouponParams{
		ShopID:       shopId,
		Code:         param.Code,
		DiscountType: param.DiscountType,
		Value:        repository.NumericFromDecimal(param.Value),
		MaxDiscount:  numericFromDecimalPtr(param.MaxDiscount),
		IsActive:     param.IsActive,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting coupon with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Coupon{}, err
	}
	logger.Info().Str(log.KeyCouponID, coupon.ID.String()).Msg("inserted coupon")

	return coupon, nil
}

func (s CouponService) FindCoupons(
	c context.Context,
	merchantId uuid.UUID,
	shopId uuid.UUID,
) ([]repository.Coupon, error) {
	c, span := otel.Tracer.Start(c, "CouponService FindCoupons")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CouponService FindCoupons").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyShopID, shopId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking ownership").Logger()
	c = logger.WithContext(c)
	if _, err := s.shops.ownedShop(c, merchantId, shopId); err != nil {
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding coupons").Logger()
	coupons, err := s.queries.FindCouponsByShopId(c, shopId)
	if err != nil {
		err = fmt.Errorf("failed finding coupons with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d coupons", len(coupons))

	return coupons, nil
}

func (s CouponService) DeleteCoupon(
	c context.Context,
	merchantId uuid.UUID,
	couponId uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "CouponService DeleteCoupon")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CouponService DeleteCoupon").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyCouponID, couponId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding coupon").Logger()
	coupon, err := s.queries.FindCouponById(c, couponId)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Info().Msg("coupon not found")
		return inErrors.ErrCouponNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed finding coupon with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "checking ownership").Logger()
	c = logger.WithContext(c)
	if _, err := s.shops.ownedShop(c, merchantId, coupon.ShopID); err != nil {
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "deleting coupon").Logger()
	if _, err := s.queries.DeleteCoupon(c, couponId); err != nil {
		err = fmt.Errorf("failed deleting coupon with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted coupon")

	return nil
}

func numericFromDecimalPtr(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return repository.NumericFromDecimal(*d)
}
