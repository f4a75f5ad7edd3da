package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const cartColumns = `id, shop_id, session_id, customer_id, items, coupon_code, expires_at, created_at, updated_at`

func scanCart(row interface{ Scan(...interface{}) error }) (Cart, error) {
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.ShopID,
		&i.SessionID,
		&i.CustomerID,
		&i.Items,
		&i.CouponCode,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findActiveCartByCustomerId = `
SELECT ` + cartColumns + `
FROM carts
WHERE shop_id = $1 AND customer_id = $2 AND expires_at > $3
`

type FindActiveCartByCustomerIdParams struct {
	ShopID     uuid.UUID
	CustomerID uuid.UUID
	Now        pgtype.Timestamptz
}

func (q *Queries) FindActiveCartByCustomerId(
	c context.Context,
	arg FindActiveCartByCustomerIdParams,
) (Cart, error) {
	row := q.db.QueryRow(c, findActiveCartByCustomerId, arg.ShopID, arg.CustomerID, arg.Now)
	return scanCart(row)
}

const findActiveCartBySessionId = `
SELECT ` + cartColumns + `
FROM carts
WHERE shop_id = $1 AND session_id = $2 AND expires_at > $3
`

type FindActiveCartBySessionIdParams struct {
	ShopID    uuid.UUID
	SessionID string
	Now       pgtype.Timestamptz
}

func (q *Queries) FindActiveCartBySessionId(
	c context.Context,
	arg FindActiveCartBySessionIdParams,
) (Cart, error) {
	row := q.db.QueryRow(c, findActiveCartBySessionId, arg.ShopID, arg.SessionID, arg.Now)
	return scanCart(row)
}

const insertCart = `
INSERT INTO carts (shop_id, session_id, customer_id, items, expires_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + cartColumns

type InsertCartParams struct {
	ShopID     uuid.UUID
	SessionID  pgtype.Text
	CustomerID uuid.NullUUID
	Items      []byte
	ExpiresAt  pgtype.Timestamptz
}

func (q *Queries) InsertCart(c context.Context, arg InsertCartParams) (Cart, error) {
	row := q.db.QueryRow(
		c,
		insertCart,
		arg.ShopID,
		arg.SessionID,
		arg.CustomerID,
		arg.Items,
		arg.ExpiresAt,
	)
	return scanCart(row)
}

const updateCartItems = `
UPDATE carts
SET items = $2,
    coupon_code = $3,
    expires_at = $4,
    updated_at = now()
WHERE id = $1
RETURNING ` + cartColumns

type UpdateCartItemsParams struct {
	ID         uuid.UUID
	Items      []byte
	CouponCode pgtype.Text
	ExpiresAt  pgtype.Timestamptz
}

func (q *Queries) UpdateCartItems(c context.Context, arg UpdateCartItemsParams) (Cart, error) {
	row := q.db.QueryRow(c, updateCartItems, arg.ID, arg.Items, arg.CouponCode, arg.ExpiresAt)
	return scanCart(row)
}

const updateCartItemsKeepExpiry = `
UPDATE carts
SET items = $2,
    updated_at = now()
WHERE id = $1
RETURNING ` + cartColumns

type UpdateCartItemsKeepExpiryParams struct {
	ID    uuid.UUID
	Items []byte
}

func (q *Queries) UpdateCartItemsKeepExpiry(
	c context.Context,
	arg UpdateCartItemsKeepExpiryParams,
) (Cart, error) {
	row := q.db.QueryRow(c, updateCartItemsKeepExpiry, arg.ID, arg.Items)
	return scanCart(row)
}

const claimCart = `
UPDATE carts
SET customer_id = $2,
    updated_at = now()
WHERE id = $1
RETURNING ` + cartColumns

type ClaimCartParams struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
}

func (q *Queries) ClaimCart(c context.Context, arg ClaimCartParams) (Cart, error) {
	row := q.db.QueryRow(c, claimCart, arg.ID, arg.CustomerID)
	return scanCart(row)
}
