// Package catalog provides the repository interface and PostgreSQL
// implementation for browsing and managing products and categories.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/money"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrDuplicate = errors.New("duplicate slug or sku")
)

type Query struct {
	Q            string
	CategorySlug string
}

type Repository interface {
	List(ctx context.Context, q Query) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	ListCategories(ctx context.Context) ([]Category, error)

	// Admin surface: includes inactive products.
	ListAll(ctx context.Context, limit int) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectProduct = `
	SELECT
		p.id, COALESCE(p.category_id::text,''), p.name, p.slug, COALESCE(p.description,''),
		p.price_cents, p.currency_code, COALESCE(p.sku,''), COALESCE(p.image_url,''), p.is_active,
		COALESCE(c.name,''), COALESCE(c.slug,''),
		i.quantity, i.reserved,
		p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN inventory i ON i.product_id = p.id
`

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	search := strings.TrimSpace(q.Q)
	slug := strings.TrimSpace(q.CategorySlug)

	rows, err := r.db.Query(ctx, selectProduct+`
		WHERE p.is_active = TRUE
		  AND ($1 = '' OR p.name ILIKE '%'||$1||'%' OR p.description ILIKE '%'||$1||'%')
		  AND ($2 = '' OR c.slug = $2)
		ORDER BY p.created_at DESC
	`, search, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, selectProduct+`WHERE p.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, COALESCE(description,'')
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListAll(ctx context.Context, limit int) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 500
	}
	rows, err := r.db.Query(ctx, selectProduct+`
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO products (id, category_id, name, slug, description, price_cents, currency_code, sku, image_url, is_active, created_at, updated_at)
		VALUES ($1, NULLIF($2,'')::uuid, $3, $4, NULLIF($5,''), $6, $7, NULLIF($8,''), NULLIF($9,''), $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`, p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.CurrencyCode, p.SKU, p.ImageURL, p.IsActive).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	p.Price = money.FormatCents(p.PriceCents)
	return nil
}

func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET category_id = NULLIF($2,'')::uuid,
		    name = $3,
		    slug = $4,
		    description = NULLIF($5,''),
		    price_cents = $6,
		    currency_code = $7,
		    sku = NULLIF($8,''),
		    image_url = NULLIF($9,''),
		    is_active = $10,
		    updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.CurrencyCode, p.SKU, p.ImageURL, p.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var qty, reserved *int
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.PriceCents, &p.CurrencyCode, &p.SKU, &p.ImageURL, &p.IsActive,
		&p.CategoryName, &p.CategorySlug, &qty, &reserved,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if qty != nil {
		p.Inventory = &Inventory{Quantity: *qty}
		if reserved != nil {
			p.Inventory.Reserved = *reserved
		}
	}
	p.Price = money.FormatCents(p.PriceCents)
	return &p, nil
}
