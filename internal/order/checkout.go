package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// DB is the transactional handle the checkout executor runs against.
// *pgxpool.Pool satisfies it; tests substitute fakes.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PricingPolicy computes charges added on top of the cart subtotal.
type PricingPolicy interface {
	AdditionalCharges(subtotalCents int64, items []Item) (taxCents, shippingCents int64)
}

// ZeroCharges is the current policy: there is no tax/shipping rule
// engine, both are fixed at zero server-side.
type ZeroCharges struct{}

func (ZeroCharges) AdditionalCharges(int64, []Item) (int64, int64) { return 0, 0 }

// Checkout converts a user's cart into an immutable order inside a
// single transaction.
type Checkout struct {
	db      DB
	pricing PricingPolicy
}

func NewCheckout(db DB, pricing PricingPolicy) *Checkout {
	if pricing == nil {
		pricing = ZeroCharges{}
	}
	return &Checkout{db: db, pricing: pricing}
}

// Run reads the cart and its items, computes totals from the price
// snapshots captured at add-time, persists the order and its line items,
// and clears the cart. All of it commits or none of it does. Returns
// ErrEmptyCart when there is no cart row or the cart has zero items.
//
// Prices are NOT re-read from the catalog here: the unit price stored on
// the cart item is authoritative. Product name and sku are joined in for
// the order-item snapshot only.
func (c *Checkout) Run(ctx context.Context, userID string, shipping *ShippingInfo, payment *PaymentInfo) (*Order, error) {
	if shipping == nil {
		shipping = &ShippingInfo{}
	}
	if payment == nil {
		payment = &PaymentInfo{}
	}

	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cartID string
	if err := tx.QueryRow(ctx, `SELECT id FROM carts WHERE user_id=$1`, userID).Scan(&cartID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}

	items, err := loadCartItems(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Single-currency carts: the first item's currency wins.
	currency := items[0].CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	var subtotal int64
	for i := range items {
		items[i].LineTotalCents = int64(items[i].Quantity) * items[i].UnitPriceCents
		subtotal += items[i].LineTotalCents
	}
	tax, shippingCents := c.pricing.AdditionalCharges(subtotal, items)
	total := subtotal + tax + shippingCents

	o := &Order{
		UserID:        userID,
		Status:        StatusPending,
		SubtotalCents: subtotal,
		TaxCents:      tax,
		ShippingCents: shippingCents,
		TotalCents:    total,
		CurrencyCode:  currency,
		Shipping:      *shipping,
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (
			user_id, status,
			subtotal_cents, tax_cents, shipping_cents, total_cents,
			currency_code,
			payment_provider, payment_reference,
			shipping_name, shipping_address1, shipping_address2, shipping_city,
			shipping_state, shipping_postal_code, shipping_country
		)
		VALUES ($1,'pending',$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, created_at, updated_at
	`, userID, subtotal, tax, shippingCents, total, currency,
		nullif(payment.Provider), nullif(payment.Reference),
		nullif(shipping.Name), nullif(shipping.Address1), nullif(shipping.Address2),
		nullif(shipping.City), nullif(shipping.State), nullif(shipping.PostalCode),
		nullif(shipping.Country),
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}

	for i := range items {
		it := &items[i]
		if err := tx.QueryRow(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name, sku,
				quantity, unit_price_cents, currency_code, line_total_cents
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`, o.ID, it.ProductID, it.ProductName, nullif(it.SKU),
			it.Quantity, it.UnitPriceCents, it.CurrencyCode, it.LineTotalCents,
		).Scan(&it.ID); err != nil {
			return nil, err
		}
	}

	// Only the items go; the cart row persists for the next session.
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func loadCartItems(ctx context.Context, tx pgx.Tx, cartID string) ([]Item, error) {
	rows, err := tx.Query(ctx, `
		SELECT
			ci.product_id, ci.quantity, ci.unit_price_cents, ci.currency_code,
			p.name, COALESCE(p.sku,'')
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPriceCents,
			&it.CurrencyCode, &it.ProductName, &it.SKU); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func nullif(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
