package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicate: one review per product per user.
	ErrDuplicate = errors.New("review already exists")
)

type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	UserID     string    `json:"userId"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body,omitempty"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Repository interface {
	ListForProduct(ctx context.Context, productID string) ([]Review, error)
	Create(ctx context.Context, rv *Review) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ListForProduct(ctx context.Context, productID string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT
			r.id, r.product_id, r.user_id, r.rating,
			COALESCE(r.title,''), COALESCE(r.body,''), r.created_at,
			TRIM(COALESCE(u.first_name || ' ' || u.last_name, u.email, 'Anonymous'))
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1 AND r.is_approved = TRUE
		ORDER BY r.created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating,
			&rv.Title, &rv.Body, &rv.CreatedAt, &rv.AuthorName); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PGRepo) Create(ctx context.Context, rv *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, rv.ProductID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO reviews (product_id, user_id, rating, title, body, is_approved)
		VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), TRUE)
		RETURNING id, created_at
	`, rv.ProductID, rv.UserID, rv.Rating, rv.Title, rv.Body).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}
