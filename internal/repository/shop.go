package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const shopColumns = `id, merchant_id, name, slug, tax_enabled, tax_rate, discount_settings, created_at, updated_at`

func scanShop(row interface{ Scan(...interface{}) error }) (Shop, error) {
	var i Shop
	err := row.Scan(
		&i.ID,
		&i.MerchantID,
		&i.Name,
		&i.Slug,
		&i.TaxEnabled,
		&i.TaxRate,
		&i.DiscountSettings,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertShop = `
INSERT INTO shops (merchant_id, name, slug, tax_enabled, tax_rate, discount_settings)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + shopColumns

type InsertShopParams struct {
	MerchantID       uuid.UUID
	Name             string
	Slug             string
	TaxEnabled       bool
	TaxRate          pgtype.Numeric
	DiscountSettings []byte
}

func (q *Queries) InsertShop(c context.Context, arg InsertShopParams) (Shop, error) {
	row := q.db.QueryRow(
		c,
		insertShop,
		arg.MerchantID,
		arg.Name,
		arg.Slug,
		arg.TaxEnabled,
		arg.TaxRate,
		arg.DiscountSettings,
	)
	return scanShop(row)
}

const findShopBySlug = `
SELECT ` + shopColumns + `
FROM shops
WHERE slug = $1
`

func (q *Queries) FindShopBySlug(c context.Context, slug string) (Shop, error) {
	return scanShop(q.db.QueryRow(c, findShopBySlug, slug))
}

const findShopById = `
SELECT ` + shopColumns + `
FROM shops
WHERE id = $1
`

func (q *Queries) FindShopById(c context.Context, id uuid.UUID) (Shop, error) {
	return scanShop(q.db.QueryRow(c, findShopById, id))
}

const findShopsByMerchantId = `
SELECT ` + shopColumns + `
FROM shops
WHERE merchant_id = $1
ORDER BY created_at
`

func (q *Queries) FindShopsByMerchantId(c context.Context, merchantId uuid.UUID) ([]Shop, error) {
	rows, err := q.db.Query(c, findShopsByMerchantId, merchantId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Shop{}
	for rows.Next() {
		i, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateShop = `
UPDATE shops
SET name = $2,
    tax_enabled = $3,
    tax_rate = $4,
    discount_settings = $5,
    updated_at = now()
WHERE id = $1
RETURNING ` + shopColumns

type UpdateShopParams struct {
	ID               uuid.UUID
	Name             string
	TaxEnabled       bool
	TaxRate          pgtype.Numeric
	DiscountSettings []byte
}

func (q *Queries) UpdateShop(c context.Context, arg UpdateShopParams) (Shop, error) {
	row := q.db.QueryRow(
		c,
		updateShop,
		arg.ID,
		arg.Name,
		arg.TaxEnabled,
		arg.TaxRate,
		arg.DiscountSettings,
	)
	return scanShop(row)
}
