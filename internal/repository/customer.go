package repository

import (
	"context"

	"github.com/google/uuid"
)

const findCustomerById = `
SELECT id, shop_id, email, total_spent, order_count, tier, created_at, updated_at
FROM customers
WHERE id = $1
`

func (q *Queries) FindCustomerById(c context.Context, id uuid.UUID) (Customer, error) {
	row := q.db.QueryRow(c, findCustomerById, id)
	var i Customer
	err := row.Scan(
		&i.ID,
		&i.ShopID,
		&i.Email,
		&i.TotalSpent,
		&i.OrderCount,
		&i.Tier,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
