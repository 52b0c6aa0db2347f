package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abcretail/storefront/internal/domain"
)

// CartStore holds only the (owner, product) link rows; product details are
// joined live from the catalog by the services, never stored here.
type CartStore struct{ DB *pgxpool.Pool }

var _ domain.CartStore = (*CartStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS cart_lines (
	owner      TEXT NOT NULL,
	product_id TEXT NOT NULL,
	quantity   INT  NOT NULL CHECK (quantity >= 1),
	PRIMARY KEY (owner, product_id)
)`

func (s *CartStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, schema)
	return err
}

// Put sets the absolute quantity for the pair, inserting the row when
// absent. Two concurrent puts race last-write-wins; no row lock is taken.
func (s *CartStore) Put(ctx context.Context, line domain.CartLine) error {
	if line.Owner == "" || line.ProductID == "" || line.Quantity < 1 {
		return domain.ErrValidation
	}
	_, err := s.DB.Exec(ctx, `
		INSERT INTO cart_lines(owner, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
	`, line.Owner, line.ProductID, line.Quantity)
	return err
}

func (s *CartStore) Get(ctx context.Context, owner, productID string) (domain.CartLine, error) {
	line := domain.CartLine{Owner: owner, ProductID: productID}
	err := s.DB.QueryRow(ctx,
		`SELECT quantity FROM cart_lines WHERE owner=$1 AND product_id=$2`,
		owner, productID).Scan(&line.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartLine{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

func (s *CartStore) ListByOwner(ctx context.Context, owner string) ([]domain.CartLine, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT product_id, quantity FROM cart_lines WHERE owner=$1 ORDER BY product_id`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CartLine
	for rows.Next() {
		line := domain.CartLine{Owner: owner}
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

func (s *CartStore) Remove(ctx context.Context, owner, productID string) error {
	_, err := s.DB.Exec(ctx,
		`DELETE FROM cart_lines WHERE owner=$1 AND product_id=$2`, owner, productID)
	return err
}

func (s *CartStore) Clear(ctx context.Context, owner string) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM cart_lines WHERE owner=$1`, owner)
	return err
}

func (s *CartStore) Count(ctx context.Context, owner string) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM cart_lines WHERE owner=$1`, owner).Scan(&n)
	return n, err
}
