package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Merchant struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Shop struct {
	ID               uuid.UUID
	MerchantID       uuid.UUID
	Name             string
	Slug             string
	TaxEnabled       bool
	TaxRate          pgtype.Numeric
	DiscountSettings []byte
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type Product struct {
	ID           uuid.UUID
	ShopID       uuid.UUID
	Name         string
	Sku          pgtype.Text
	Price        pgtype.Numeric
	ComparePrice pgtype.Numeric
	Quantity     int32
	Published    bool
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type ProductVariant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Sku       pgtype.Text
	Price     pgtype.Numeric
	Quantity  pgtype.Int4
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Customer struct {
	ID         uuid.UUID
	ShopID     uuid.UUID
	Email      string
	TotalSpent pgtype.Numeric
	OrderCount int32
	Tier       pgtype.Text
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

type Coupon struct {
	ID           uuid.UUID
	ShopID       uuid.UUID
	Code         string
	DiscountType string
	Value        pgtype.Numeric
	MaxDiscount  pgtype.Numeric
	IsActive     bool
	StartsAt     pgtype.Timestamptz
	EndsAt       pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type Cart struct {
	ID         uuid.UUID
	ShopID     uuid.UUID
	SessionID  pgtype.Text
	CustomerID uuid.NullUUID
	Items      []byte
	CouponCode pgtype.Text
	ExpiresAt  pgtype.Timestamptz
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}
