package cart

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
)

type Repository interface {
	// Get returns the user's cart, creating the cart row on first access.
	Get(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*Item, error)
	UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Get(ctx context.Context, userID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cartID, err := r.ensureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			ci.id, ci.product_id, ci.quantity, ci.unit_price_cents, ci.currency_code,
			p.name, COALESCE(p.image_url,'')
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at DESC
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &Cart{ID: cartID, UserID: userID, Items: []Item{}, CurrencyCode: "USD"}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPriceCents,
			&it.CurrencyCode, &it.Product.Name, &it.Product.ImageURL); err != nil {
			return nil, err
		}
		it.Product.ID = it.ProductID
		it.LineTotalCents = int64(it.Quantity) * it.UnitPriceCents
		c.SubtotalCents += it.LineTotalCents
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(c.Items) > 0 {
		c.CurrencyCode = c.Items[0].CurrencyCode
	}
	return c, nil
}

// AddItem captures the product's current price as the cart snapshot and
// upserts the line: adding an already-present product increments its
// quantity instead of duplicating the row.
func (r *PGRepo) AddItem(ctx context.Context, userID, productID string, quantity int) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cartID, err := r.ensureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var priceCents int64
	var currency string
	err = r.db.QueryRow(ctx, `
		SELECT price_cents, currency_code
		FROM products
		WHERE id=$1 AND is_active=TRUE
	`, productID).Scan(&priceCents, &currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var it Item
	err = r.db.QueryRow(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity, unit_price_cents, currency_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			updated_at = NOW()
		RETURNING id, product_id, quantity, unit_price_cents, currency_code
	`, cartID, productID, quantity, priceCents, currency).
		Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPriceCents, &it.CurrencyCode)
	if err != nil {
		return nil, err
	}
	it.LineTotalCents = int64(it.Quantity) * it.UnitPriceCents
	return &it, nil
}

func (r *PGRepo) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	err := r.db.QueryRow(ctx, `
		UPDATE cart_items ci
		SET quantity=$1, updated_at=NOW()
		FROM carts c
		WHERE ci.id=$2 AND ci.cart_id=c.id AND c.user_id=$3
		RETURNING ci.id, ci.product_id, ci.quantity, ci.unit_price_cents, ci.currency_code
	`, quantity, itemID, userID).
		Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPriceCents, &it.CurrencyCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	it.LineTotalCents = int64(it.Quantity) * it.UnitPriceCents
	return &it, nil
}

func (r *PGRepo) RemoveItem(ctx context.Context, userID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.id=$1 AND ci.cart_id=c.id AND c.user_id=$2
	`, itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PGRepo) ensureCart(ctx context.Context, userID string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, `SELECT id FROM carts WHERE user_id=$1`, userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`, userID).Scan(&id)
	return id, err
}
