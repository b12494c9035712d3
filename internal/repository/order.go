package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/richdynamix/similarproducts/internal/domain"
)

// GetOrder loads one order with its line items.
func (r *Repository) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	o := &domain.Order{ID: orderID}

	err := r.pool.QueryRow(ctx,
		`SELECT store_id, COALESCE(customer_id, 0) FROM orders WHERE id = $1`, orderID,
	).Scan(&o.StoreID, &o.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order id=%d: %w", orderID, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT product_id FROM order_items WHERE order_id = $1 ORDER BY id`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("query items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return o, nil
}

// ListStores returns every storefront store.
func (r *Repository) ListStores(ctx context.Context) ([]domain.Store, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM stores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}

// ListOrdersByStore returns all orders placed by registered customers
// in one store, line items included. Guest checkouts carry no customer
// to attribute actions to and are skipped.
func (r *Repository) ListOrdersByStore(ctx context.Context, storeID int64) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT o.id, o.customer_id, oi.product_id
		 FROM orders o
		 JOIN order_items oi ON oi.order_id = o.id
		 WHERE o.store_id = $1 AND o.customer_id IS NOT NULL
		 ORDER BY o.id, oi.id`, storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders for store %d: %w", storeID, err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			orderID    int64
			customerID int64
			productID  int64
		)
		if err := rows.Scan(&orderID, &customerID, &productID); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		if len(orders) == 0 || orders[len(orders)-1].ID != orderID {
			orders = append(orders, domain.Order{ID: orderID, StoreID: storeID, CustomerID: customerID})
		}
		last := &orders[len(orders)-1]
		last.Items = append(last.Items, domain.OrderItem{ProductID: productID})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}
