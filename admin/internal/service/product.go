package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/prakoso/storely/admin/internal/otel"
	"github.com/prakoso/storely/admin/pkg/request"
	inErrors "github.com/prakoso/storely/internal/common/errors"
	"github.com/prakoso/storely/internal/log"
	"github.com/prakoso/storely/internal/repository"
)

type ProductService struct {
	queries *repository.Queries
	shops   ShopService
}

func NewProductService(queries *repository.Queries, shops ShopService) ProductService {
	return ProductService{queries: queries, shops: shops}
}

func (s ProductService) CreateProduct(
	c context.Context,
	merchantId uuid.UUID,
	shopId uuid.UUID,
	param request.CreateProduct,
) (repository.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService CreateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService CreateProduct").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyShopID, shopId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking ownership").Logger()
	c = logger.WithContext(c)
	if _, err := s.shops.ownedShop(c, merchantId, shopId); err != nil {
		return repository.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	product, err := s.queries.InsertProduct(c, repository.InsertProductParams{
		ShopID:       shopId,
		Name:         param.Name,
		Sku:          pgtype.Text{String: param.Sku, Valid: param.Sku != ""},
		Price:        repository.NumericFromDecimal(param.Price),
		ComparePrice: numericFromDecimalPtr(param.ComparePrice),
		Quantity:     param.Quantity,
		Published:    param.Published,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Product{}, err
	}
	logger.Info().Str(log.KeyProductID, product.ID.String()).Msg("inserted product")

	return product, nil
}

func (s ProductService) FindProducts(
	c context.Context,
	merchantId uuid.UUID,
	shopId uuid.UUID,
) ([]repository.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyShopID, shopId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking ownership").Logger()
	c = logger.WithContext(c)
	if _, err := s.shops.ownedShop(c, merchantId, shopId); err != nil {
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	products, err := s.queries.FindProductsByShopId(c, shopId)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	return products, nil
}

func (s ProductService) FindProduct(
	c context.Context,
	merchantId uuid.UUID,
	productId uuid.UUID,
) (repository.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProduct").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "finding product").
		Logger()
	c = logger.WithContext(c)

	product, err := s.ownedProduct(c, merchantId, productId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Product{}, err
	}
	logger.Info().Msg("found product")

	return product, nil
}

func (s ProductService) UpdateProduct(
	c context.Context,
	merchantId uuid.UUID,
	productId uuid.UUID,
	param request.UpdateProduct,
) (repository.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking ownership").Logger()
	c = logger.WithContext(c)
	if _, err := s.ownedProduct(c, merchantId, productId); err != nil {
		return repository.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	product, err := s.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:           productId,
		Name:         param.Name,
		Sku:          pgtype.Text{String: param.Sku, Valid: param.Sku != ""},
		Price:        repository.NumericFromDecimal(param.Price),
		ComparePrice: numericFromDecimalPtr(param.ComparePrice),
		Quantity:     param.Quantity,
		Published:    param.Published,
	})
	if err != nil {
		err = fmt.Errorf("failed updating product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Product{}, err
	}
	logger.Info().Msg("updated product")

	return product, nil
}

func (s ProductService) CreateVariant(
	c context.Context,
	merchantId uuid.UUID,
	productId uuid.UUID,
	param request.CreateVariant,
) (repository.ProductVariant, error) {
	c, span := otel.Tracer.Start(c, "ProductService CreateVariant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService CreateVariant").
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking ownership").Logger()
	c = logger.WithContext(c)
	if _, err := s.ownedProduct(c, merchantId, productId); err != nil {
		return repository.ProductVariant{}, err
	}

	quantity := pgtype.Int4{}
	if param.Quantity != nil {
		quantity = pgtype.Int4{Int32: *param.Quantity, Valid: true}
	}

	logger = logger.With().Str(log.KeyProcess, "inserting variant").Logger()
	variant, err := s.queries.InsertProductVariant(c, repository.InsertProductVariantParams{
		ProductID: productId,
		Name:      param.Name,
		Sku:       pgtype.Text{String: param.Sku, Valid: param.Sku != ""},
		Price:     numericFromDecimalPtr(param.Price),
		Quantity:  quantity,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting variant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.ProductVariant{}, err
	}
	logger.Info().Str(log.KeyVariantID, variant.ID.String()).Msg("inserted variant")

	return variant, nil
}

// ownedProduct loads the product and rejects merchants that do not own the
// shop it belongs to.
func (s ProductService) ownedProduct(
	c context.Context,
	merchantId uuid.UUID,
	productId uuid.UUID,
) (repository.Product, error) {
	product, err := s.queries.FindProductById(c, productId)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.Product{}, inErrors.ErrProductNotFound
	}
	if err != nil {
		return repository.Product{}, fmt.Errorf("failed finding product with error=%w", err)
	}
	if _, err := s.shops.ownedShop(c, merchantId, product.ShopID); err != nil {
		return repository.Product{}, err
	}
	return product, nil
}
