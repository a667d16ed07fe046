package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	// GetByUser is scoped to the owner; other users' orders read as not found.
	GetByUser(ctx context.Context, id, userID string) (*Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectOrder = `
	SELECT
		id, user_id, status,
		subtotal_cents, tax_cents, shipping_cents, total_cents,
		currency_code,
		COALESCE(shipping_name,''), COALESCE(shipping_address1,''), COALESCE(shipping_address2,''),
		COALESCE(shipping_city,''), COALESCE(shipping_state,''), COALESCE(shipping_postal_code,''),
		COALESCE(shipping_country,''),
		created_at, updated_at
	FROM orders
`

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, selectOrder+`
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByUser(ctx context.Context, id, userID string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, selectOrder+`WHERE id=$1 AND user_id=$2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, product_name, COALESCE(sku,''),
		       quantity, unit_price_cents, currency_code, line_total_cents
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.SKU,
			&it.Quantity, &it.UnitPriceCents, &it.CurrencyCode, &it.LineTotalCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Status,
		&o.SubtotalCents, &o.TaxCents, &o.ShippingCents, &o.TotalCents,
		&o.CurrencyCode,
		&o.Shipping.Name, &o.Shipping.Address1, &o.Shipping.Address2,
		&o.Shipping.City, &o.Shipping.State, &o.Shipping.PostalCode,
		&o.Shipping.Country,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
