package repository

import (
	"context"
)

const insertMerchant = `
INSERT INTO merchants (name, email, password)
VALUES ($1, $2, $3)
RETURNING id, name, email, password, created_at, updated_at
`

type InsertMerchantParams struct {
	Name     string
	Email    string
	Password string
}

func (q *Queries) InsertMerchant(c context.Context, arg InsertMerchantParams) (Merchant, error) {
	row := q.db.QueryRow(c, insertMerchant, arg.Name, arg.Email, arg.Password)
	var i Merchant
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Password, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const findMerchantByEmail = `
SELECT id, name, email, password, created_at, updated_at
FROM merchants
WHERE email = $1
`

func (q *Queries) FindMerchantByEmail(c context.Context, email string) (Merchant, error) {
	row := q.db.QueryRow(c, findMerchantByEmail, email)
	var i Merchant
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Password, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}
