package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/richdynamix/similarproducts/internal/domain"
)

// GetProduct loads a product with its category names and, for simple
// products, the composite parent it belongs to.
func (r *Repository) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	p := &domain.Product{ID: productID}

	err := r.pool.QueryRow(ctx,
		`SELECT type_id FROM products WHERE id = $1`, productID,
	).Scan(&p.TypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product id=%d: %w", productID, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT c.name
		 FROM product_categories pc
		 JOIN categories c ON pc.category_id = c.id
		 WHERE pc.product_id = $1
		 ORDER BY c.id`, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("query categories for product %d: %w", productID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		p.Categories = append(p.Categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	// Grouped and configurable links share the relations table; the
	// lowest parent id wins when a product is linked to several.
	err = r.pool.QueryRow(ctx,
		`SELECT parent_id FROM product_relations
		 WHERE child_id = $1
		 ORDER BY parent_id
		 LIMIT 1`, productID,
	).Scan(&p.ParentID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("query parent for product %d: %w", productID, err)
	}

	return p, nil
}
