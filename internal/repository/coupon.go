package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponColumns = `id, shop_id, code, discount_type, value, max_discount, is_active, starts_at, ends_at, created_at, updated_at`

func scanCoupon(row interface{ Scan(...interface{}) error }) (Coupon, error) {
	var i Coupon
	err := row.Scan(
		&i.ID,
		&i.ShopID,
		&i.Code,
		&i.DiscountType,
		&i.Value,
		&i.MaxDiscount,
		&i.IsActive,
		&i.StartsAt,
		&i.EndsAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertCoupon = `
INSERT INTO coupons (shop_id, code, discount_type, value, max_discount, is_active, starts_at, ends_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + couponColumns

type InsertCouponParams struct {
	ShopID       uuid.UUID
	Code         string
	DiscountType string
	Value        pgtype.Numeric
	MaxDiscount  pgtype.Numeric
	IsActive     bool
	StartsAt     pgtype.Timestamptz
	EndsAt       pgtype.Timestamptz
}

func (q *Queries) InsertCoupon(c context.Context, arg InsertCouponParams) (Coupon, error) {
	row := q.db.QueryRow(
		c,
		insertCoupon,
		arg.ShopID,
		arg.Code,
		arg.DiscountType,
		arg.Value,
		arg.MaxDiscount,
		arg.IsActive,
		arg.StartsAt,
		arg.EndsAt,
	)
	return scanCoupon(row)
}

const findCouponByCode = `
SELECT ` + couponColumns + `
FROM coupons
WHERE shop_id = $1
  AND code = $2
`

type FindCouponByCodeParams struct {
	ShopID uuid.UUID
	Code   string
}

func (q *Queries) FindCouponByCode(c context.Context, arg FindCouponByCodeParams) (Coupon, error) {
	return scanCoupon(q.db.QueryRow(c, findCouponByCode, arg.ShopID, arg.Code))
}

const findCouponById = `
SELECT ` + couponColumns + `
FROM coupons
WHERE id = $1
`

func (q *Queries) FindCouponById(c context.Context, id uuid.UUID) (Coupon, error) {
	return scanCoupon(q.db.QueryRow(c, findCouponById, id))
}

const findCouponsByShopId = `
SELECT ` + couponColumns + `
FROM coupons
WHERE shop_id = $1
ORDER BY created_at
`

func (q *Queries) FindCouponsByShopId(c context.Context, shopId uuid.UUID) ([]Coupon, error) {
	rows, err := q.db.Query(c, findCouponsByShopId, shopId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Coupon{}
	for rows.Next() {
		i, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteCoupon = `
DELETE FROM coupons
WHERE id = $1
RETURNING ` + couponColumns

func (q *Queries) DeleteCoupon(c context.Context, id uuid.UUID) (Coupon, error) {
	return scanCoupon(q.db.QueryRow(c, deleteCoupon, id))
}
