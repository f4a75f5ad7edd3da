package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, shop_id, name, sku, price, compare_price, quantity, published, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (Product, error) {
	var i Product
	err := row.Scan(
		&i.ID,
		&i.ShopID,
		&i.Name,
		&i.Sku,
		&i.Price,
		&i.ComparePrice,
		&i.Quantity,
		&i.Published,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertProduct = `
INSERT INTO products (shop_id, name, sku, price, compare_price, quantity, published)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + productColumns

type InsertProductParams struct {
	ShopID       uuid.UUID
	Name         string
	Sku          pgtype.Text
	Price        pgtype.Numeric
	ComparePrice pgtype.Numeric
	Quantity     int32
	Published    bool
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(
		c,
		insertProduct,
		arg.ShopID,
		arg.Name,
		arg.Sku,
		arg.Price,
		arg.ComparePrice,
		arg.Quantity,
		arg.Published,
	)
	return scanProduct(row)
}

const findProductById = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRow(c, findProductById, id))
}

const findProductsByShopId = `
SELECT ` + productColumns + `
FROM products
WHERE shop_id = $1
ORDER BY created_at
`

func (q *Queries) FindProductsByShopId(c context.Context, shopId uuid.UUID) ([]Product, error) {
	rows, err := q.db.Query(c, findProductsByShopId, shopId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findProductsByIds = `
SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1::uuid[])
`

func (q *Queries) FindProductsByIds(c context.Context, ids []uuid.UUID) ([]Product, error) {
	rows, err := q.db.Query(c, findProductsByIds, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateProduct = `
UPDATE products
SET name = $2,
    sku = $3,
    price = $4,
    compare_price = $5,
    quantity = $6,
    published = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + productColumns

type UpdateProductParams struct {
	ID           uuid.UUID
	Name         string
	Sku          pgtype.Text
	Price        pgtype.Numeric
	ComparePrice pgtype.Numeric
	Quantity     int32
	Published    bool
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(
		c,
		updateProduct,
		arg.ID,
		arg.Name,
		arg.Sku,
		arg.Price,
		arg.ComparePrice,
		arg.Quantity,
		arg.Published,
	)
	return scanProduct(row)
}

const variantColumns = `id, product_id, name, sku, price, quantity, created_at, updated_at`

func scanVariant(row interface{ Scan(...interface{}) error }) (ProductVariant, error) {
	var i ProductVariant
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.Name,
		&i.Sku,
		&i.Price,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertProductVariant = `
INSERT INTO product_variants (product_id, name, sku, price, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + variantColumns

type InsertProductVariantParams struct {
	ProductID uuid.UUID
	Name      string
	Sku       pgtype.Text
	Price     pgtype.Numeric
	Quantity  pgtype.Int4
}

func (q *Queries) InsertProductVariant(
	c context.Context,
	arg InsertProductVariantParams,
) (ProductVariant, error) {
	row := q.db.QueryRow(
		c,
		insertProductVariant,
		arg.ProductID,
		arg.Name,
		arg.Sku,
		arg.Price,
		arg.Quantity,
	)
	return scanVariant(row)
}

const findVariantById = `
SELECT ` + variantColumns + `
FROM product_variants
WHERE id = $1
`

func (q *Queries) FindVariantById(c context.Context, id uuid.UUID) (ProductVariant, error) {
	return scanVariant(q.db.QueryRow(c, findVariantById, id))
}

const findVariantsByIds = `
SELECT ` + variantColumns + `
FROM product_variants
WHERE id = ANY($1::uuid[])
`

func (q *Queries) FindVariantsByIds(
	c context.Context,
	ids []uuid.UUID,
) ([]ProductVariant, error) {
	rows, err := q.db.Query(c, findVariantsByIds, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ProductVariant{}
	for rows.Next() {
		i, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
