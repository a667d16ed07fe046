// Package admin holds the read models backing the admin panel.
package admin

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Summary struct {
	Users    int `json:"users"`
	Orders   int `json:"orders"`
	Products int `json:"products"`
}

// OrderSummary is an order row joined with the owning user's email.
type OrderSummary struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	UserEmail     string    `json:"userEmail,omitempty"`
	Status        string    `json:"status"`
	SubtotalCents int64     `json:"subtotalCents"`
	TaxCents      int64     `json:"taxCents"`
	ShippingCents int64     `json:"shippingCents"`
	TotalCents    int64     `json:"totalCents"`
	CurrencyCode  string    `json:"currencyCode"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
	ListOrders(ctx context.Context) ([]OrderSummary, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Summary(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s Summary
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM orders),
			(SELECT count(*) FROM products)
	`).Scan(&s.Users, &s.Orders, &s.Products)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGRepo) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT
			o.id, o.user_id, COALESCE(u.email,''),
			o.status,
			o.subtotal_cents, o.tax_cents, o.shipping_cents, o.total_cents,
			o.currency_code,
			o.created_at, o.updated_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT 200
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderSummary
	for rows.Next() {
		var o OrderSummary
		if err := rows.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.Status,
			&o.SubtotalCents, &o.TaxCents, &o.ShippingCents, &o.TotalCents,
			&o.CurrencyCode, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
