package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/prakoso/storely/internal/common/errors"
	"github.com/prakoso/storely/internal/log"
	"github.com/prakoso/storely/internal/pricing"
	"github.com/prakoso/storely/internal/repository"
	"github.com/prakoso/storely/storefront/internal/otel"
	"github.com/prakoso/storely/storefront/pkg/request"
	"github.com/prakoso/storely/storefront/pkg/response"
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) CartService {
	return CartService{pool: pool, queries: queries, cache: cache}
}

// GetCart builds the priced cart view. A request carrying neither a session
// cookie nor a customer header gets an empty summary without touching
// storage; so does an identity whose cart is absent or expired.
func (s CartService) GetCart(
	c context.Context,
	slug string,
	ident request.CartIdentity,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Str(log.KeyShopSlug, slug).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving shop").Logger()
	c = logger.WithContext(c)
	shop, err := s.ResolveShop(c, slug)
	if err != nil {
		return response.Cart{}, err
	}

	if ident.Empty() {
		logger.Info().Msg("no cart identity, returning empty summary")
		return emptySummary(), nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding active cart").Logger()
	cart, found, err := s.findActiveCart(c, shop, ident)
	if err != nil {
		err = fmt.Errorf("failed finding active cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if !found {
		logger.Info().Msg("no active cart, returning empty summary")
		return emptySummary(), nil
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found active cart")

	c = logger.WithContext(c)
	return s.buildView(c, shop, cart)
}

// AddItem merges a line into the cart, creating the cart on first use.
// Inventory is checked against the variant when one is referenced, else the
// product, counting quantity already held in the cart.
func (s CartService) AddItem(
	c context.Context,
	slug string,
	ident request.CartIdentity,
	param request.AddItem,
) (uuid.UUID, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyShopSlug, slug).
		Str(log.KeyProductID, param.ProductID.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving shop").Logger()
	c = logger.WithContext(c)
	shop, err := s.ResolveShop(c, slug)
	if err != nil {
		return uuid.Nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := s.queries.FindProductById(c, param.ProductID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, inErrors.ErrProductNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	if product.ShopID != shop.ID || !product.Published {
		return uuid.Nil, inErrors.ErrProductNotFound
	}
	logger.Info().Msg("found product")

	available := product.Quantity
	if param.VariantID != nil {
		logger = logger.With().
			Str(log.KeyProcess, "finding variant").
			Str(log.KeyVariantID, param.VariantID.String()).
			Logger()
		logger.Info().Msg("finding variant")
		variant, err := s.queries.FindVariantById(c, *param.VariantID)
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, inErrors.ErrVariantNotFound
		}
		if err != nil {
			err = fmt.Errorf("failed finding variant with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return uuid.Nil, err
		}
		if variant.ProductID != product.ID {
			return uuid.Nil, inErrors.ErrVariantNotFound
		}
		if variant.Quantity.Valid {
			available = variant.Quantity.Int32
		}
		logger.Info().Msg("found variant")
	}

	logger = logger.With().Str(log.KeyProcess, "finding active cart").Logger()
	cart, found, err := s.findActiveCart(c, shop, ident)
	if err != nil {
		err = fmt.Errorf("failed finding active cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}

	items := []pricing.CartItem{}
	if found {
		record, err := cart.Record()
		if err != nil {
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return uuid.Nil, err
		}
		items = record.Items
	}

	held := pricing.LineQuantity(items, param.ProductID, param.VariantID)
	if held+param.Quantity > available {
		logger.Info().
			Int32("available", available).
			Int32("held", held).
			Msg(inErrors.ErrOutOfStock.Error())
		return uuid.Nil, inErrors.ErrOutOfStock
	}

	items = pricing.MergeItem(items, pricing.CartItem{
		ProductID: param.ProductID,
		VariantID: param.VariantID,
		Quantity:  param.Quantity,
	})
	itemsJson, err := json.Marshal(items)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}

	expiresAt := pgtype.Timestamptz{Time: time.Now().Add(pricing.CartTTL), Valid: true}

	if !found {
		logger = logger.With().Str(log.KeyProcess, "inserting cart").Logger()
		logger.Info().Msg("inserting cart")
		sessionId := pgtype.Text{String: ident.SessionID, Valid: ident.SessionID != ""}
		cart, err = s.queries.InsertCart(c, repository.InsertCartParams{
			ShopID:     shop.ID,
			SessionID:  sessionId,
			CustomerID: ident.CustomerID,
			Items:      itemsJson,
			ExpiresAt:  expiresAt,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting cart with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return uuid.Nil, err
		}
		logger.Info().Str(log.KeyCartID, cart.ID.String()).Msg("inserted cart")
		return cart.ID, nil
	}

	logger = logger.With().
		Str(log.KeyProcess, "updating cart items").
		Str(log.KeyCartID, cart.ID.String()).
		Logger()
	logger.Info().Msg("updating cart items")
	cart, err = s.queries.UpdateCartItems(c, repository.UpdateCartItemsParams{
		ID:         cart.ID,
		Items:      itemsJson,
		CouponCode: cart.CouponCode,
		ExpiresAt:  expiresAt,
	})
	if err != nil {
		err = fmt.Errorf("failed updating cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	logger.Info().Msg("updated cart items")

	return cart.ID, nil
}

// UpdateCart sets a line's quantity and/or the cart's coupon code. A
// quantity of zero or less removes the line; an empty coupon code clears
// the coupon. Every update re-extends the cart's expiry.
func (s CartService) UpdateCart(
	c context.Context,
	slug string,
	ident request.CartIdentity,
	param request.UpdateCart,
) (uuid.UUID, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCart").
		Str(log.KeyShopSlug, slug).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving shop").Logger()
	c = logger.WithContext(c)
	shop, err := s.ResolveShop(c, slug)
	if err != nil {
		return uuid.Nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding active cart").Logger()
	cart, found, err := s.findActiveCart(c, shop, ident)
	if err != nil {
		err = fmt.Errorf("failed finding active cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	if !found {
		return uuid.Nil, inErrors.ErrCartNotFound
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	record, err := cart.Record()
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}

	couponCode := cart.CouponCode
	if param.CouponCode != nil {
		if *param.CouponCode == "" {
			logger.Info().Msg("clearing coupon code")
			couponCode = pgtype.Text{}
		} else {
			logger = logger.With().
				Str(log.KeyProcess, "validating coupon").
				Str(log.KeyCouponCode, *param.CouponCode).
				Logger()
			logger.Info().Msg("validating coupon")
			coupon, err := s.queries.FindCouponByCode(c, repository.FindCouponByCodeParams{
				ShopID: shop.ID,
				Code:   *param.CouponCode,
			})
			if errors.Is(err, pgx.ErrNoRows) {
				return uuid.Nil, inErrors.ErrCouponNotFound
			}
			if err != nil {
				err = fmt.Errorf("failed finding coupon with error=%w", err)
				inErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return uuid.Nil, err
			}
			err = pricing.ValidateCoupon(coupon.Pricing(), shop.ID, time.Now())
			if err != nil {
				logger.Info().Err(err).Msg("coupon rejected")
				return uuid.Nil, err
			}
			logger.Info().Msg("validated coupon")
			couponCode = pgtype.Text{String: coupon.Code, Valid: true}
		}
	}

	items := record.Items
	if param.ProductID != nil && param.Quantity != nil {
		items = pricing.SetQuantity(items, *param.ProductID, param.VariantID, *param.Quantity)
	}

	itemsJson, err := json.Marshal(items)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating cart").Logger()
	logger.Info().Msg("updating cart")
	cart, err = s.queries.UpdateCartItems(c, repository.UpdateCartItemsParams{
		ID:         cart.ID,
		Items:      itemsJson,
		CouponCode: couponCode,
		ExpiresAt:  pgtype.Timestamptz{Time: time.Now().Add(pricing.CartTTL), Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed updating cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	logger.Info().Msg("updated cart")

	return cart.ID, nil
}

// RemoveItem filters a line out of the cart without touching its expiry.
// Removing an absent line is a no-op that still succeeds.
func (s CartService) RemoveItem(
	c context.Context,
	slug string,
	ident request.CartIdentity,
	productID uuid.UUID,
	variantID *uuid.UUID,
) (uuid.UUID, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyShopSlug, slug).
		Str(log.KeyProductID, productID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving shop").Logger()
	c = logger.WithContext(c)
	shop, err := s.ResolveShop(c, slug)
	if err != nil {
		return uuid.Nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding active cart").Logger()
	cart, found, err := s.findActiveCart(c, shop, ident)
	if err != nil {
		err = fmt.Errorf("failed finding active cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	if !found {
		return uuid.Nil, inErrors.ErrCartNotFound
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	record, err := cart.Record()
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}

	items := pricing.RemoveItem(record.Items, productID, variantID)
	itemsJson, err := json.Marshal(items)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	cart, err = s.queries.UpdateCartItemsKeepExpiry(c, repository.UpdateCartItemsKeepExpiryParams{
		ID:    cart.ID,
		Items: itemsJson,
	})
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	logger.Info().Msg("removed cart item")

	return cart.ID, nil
}

// findActiveCart looks a cart up customer-first, then by session. A session
// cart found while a customer id is present is claimed by attaching the
// customer id; items from any pre-existing customer cart are not merged.
func (s CartService) findActiveCart(
	c context.Context,
	shop repository.Shop,
	ident request.CartIdentity,
) (repository.Cart, bool, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService findActiveCart").
		Logger()

	now := time.Now()
	nowTz := pgtype.Timestamptz{Time: now, Valid: true}

	if ident.CustomerID.Valid {
		cart, err := s.queries.FindActiveCartByCustomerId(
			c,
			repository.FindActiveCartByCustomerIdParams{
				ShopID:     shop.ID,
				CustomerID: ident.CustomerID.UUID,
				Now:        nowTz,
			},
		)
		if err == nil {
			return s.activeOrAbsent(c, cart, now)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return repository.Cart{}, false, err
		}
	}

	if ident.SessionID == "" {
		return repository.Cart{}, false, nil
	}

	cart, err := s.queries.FindActiveCartBySessionId(
		c,
		repository.FindActiveCartBySessionIdParams{
			ShopID:    shop.ID,
			SessionID: ident.SessionID,
			Now:       nowTz,
		},
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.Cart{}, false, nil
	}
	if err != nil {
		return repository.Cart{}, false, err
	}

	if ident.CustomerID.Valid && !cart.CustomerID.Valid {
		logger.Info().
			Str(log.KeyCartID, cart.ID.String()).
			Str(log.KeyCustomerID, ident.CustomerID.UUID.String()).
			Msg("claiming session cart for customer")
		cart, err = s.queries.ClaimCart(c, repository.ClaimCartParams{
			ID:         cart.ID,
			CustomerID: ident.CustomerID.UUID,
		})
		if err != nil {
			return repository.Cart{}, false, err
		}
	}

	return s.activeOrAbsent(c, cart, now)
}

// activeOrAbsent derives the cart's status once; an expired row is treated
// as absent even when the lookup raced the expiry.
func (s CartService) activeOrAbsent(
	c context.Context,
	cart repository.Cart,
	now time.Time,
) (repository.Cart, bool, error) {
	status := pricing.CartStatus(cart.ExpiresAt.Time, now)
	if status == pricing.StatusExpired {
		zerolog.Ctx(c).Info().
			Str(log.KeyCartID, cart.ID.String()).
			Str(log.KeyCartStatus, string(status)).
			Msg("cart expired, treating as absent")
		return repository.Cart{}, false, nil
	}
	return cart, true, nil
}

func (s CartService) buildView(
	c context.Context,
	shop repository.Shop,
	cart repository.Cart,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService buildView")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService buildView").
		Str(log.KeyCartID, cart.ID.String()).
		Logger()

	record, err := cart.Record()
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	config, err := shop.Config()
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	if len(record.Items) == 0 {
		summary := pricing.BuildSummary(
			record, config, nil, nil, nil, nil, time.Now(),
		)
		return response.NewCart(summary), nil
	}

	productIds := make([]uuid.UUID, 0, len(record.Items))
	variantIds := []uuid.UUID{}
	seen := map[uuid.UUID]bool{}
	for _, item := range record.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIds = append(productIds, item.ProductID)
		}
		if item.VariantID != nil && !seen[*item.VariantID] {
			seen[*item.VariantID] = true
			variantIds = append(variantIds, *item.VariantID)
		}
	}

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Info().Msgf("finding %d products", len(productIds))
	productRows, err := s.queries.FindProductsByIds(c, productIds)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	products := make(map[uuid.UUID]pricing.Product, len(productRows))
	for _, row := range productRows {
		products[row.ID] = row.Pricing()
	}

	variants := map[uuid.UUID]pricing.Variant{}
	if len(variantIds) > 0 {
		logger = logger.With().Str(log.KeyProcess, "finding variants").Logger()
		logger.Info().Msgf("finding %d variants", len(variantIds))
		variantRows, err := s.queries.FindVariantsByIds(c, variantIds)
		if err != nil {
			err = fmt.Errorf("failed finding variants with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		for _, row := range variantRows {
			variants[row.ID] = row.Pricing()
		}
	}

	var customer *pricing.CustomerStats
	if cart.CustomerID.Valid {
		logger = logger.With().Str(log.KeyProcess, "finding customer").Logger()
		row, err := s.queries.FindCustomerById(c, cart.CustomerID.UUID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding customer with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		if err == nil {
			stats := row.Stats()
			customer = &stats
		}
	}

	var coupon *pricing.Coupon
	if record.CouponCode != "" {
		logger = logger.With().
			Str(log.KeyProcess, "finding coupon").
			Str(log.KeyCouponCode, record.CouponCode).
			Logger()
		row, err := s.queries.FindCouponByCode(c, repository.FindCouponByCodeParams{
			ShopID: shop.ID,
			Code:   record.CouponCode,
		})
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding coupon with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		if err == nil {
			mapped := row.Pricing()
			coupon = &mapped
		}
	}

	summary := pricing.BuildSummary(record, config, products, variants, customer, coupon, time.Now())
	logger.Info().
		Str(log.KeySubtotal, summary.Subtotal.String()).
		Str(log.KeyTotal, summary.Total.String()).
		Msg("built cart summary")

	return response.NewCart(summary), nil
}

func emptySummary() response.Cart {
	return response.NewCart(pricing.BuildSummary(
		pricing.CartRecord{},
		pricing.ShopConfig{},
		nil, nil, nil, nil,
		time.Now(),
	))
}
