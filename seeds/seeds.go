package seeds

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Demo storefront layout: 10 configurable parents (ids 1-10), three
// simple children each (ids 11-40), 10 standalone simples (ids 41-50).
const (
	parentCount     = 10
	childrenPerItem = 3
	standaloneCount = 10
	orderCount      = 40
	customerCount   = 20
)

// Setup loads a small demo storefront so the bridge can be exercised
// locally without a real shop behind it.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE order_items, orders, product_relations, product_categories, categories, products, stores RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting stores")
	if _, err := pool.Exec(ctx,
		`INSERT INTO stores (name) VALUES ('Default Store'), ('Outlet Store')`,
	); err != nil {
		return fmt.Errorf("seed stores: %w", err)
	}

	log.Println("[seed] inserting categories")
	if err := seedCategories(ctx, pool); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	log.Println("[seed] inserting products")
	if err := seedProducts(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	log.Println("[seed] inserting orders")
	if err := seedOrders(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool) error {
	names := []string{"Shoes", "Shirts", "Accessories", "Sale", "New In"}

	rows := []string{}
	args := []any{}
	for i, name := range names {
		rows = append(rows, fmt.Sprintf("($%d)", i+1))
		args = append(args, name)
	}

	query := "INSERT INTO categories (name) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	simpleCount := parentCount*childrenPerItem + standaloneCount
	total := parentCount + simpleCount

	rows := []string{}
	args := []any{}
	for i := 0; i < total; i++ {
		typeID := "simple"
		if i < parentCount {
			typeID = "configurable"
		}
		rows = append(rows, fmt.Sprintf("($%d)", i+1))
		args = append(args, typeID)
	}
	query := "INSERT INTO products (type_id) VALUES " + strings.Join(rows, ", ")
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return err
	}

	// Child → parent links for the configurable products.
	rows = rows[:0]
	args = args[:0]
	for parent := 1; parent <= parentCount; parent++ {
		for c := 0; c < childrenPerItem; c++ {
			child := parentCount + (parent-1)*childrenPerItem + c + 1
			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
			args = append(args, parent, child)
		}
	}
	query = "INSERT INTO product_relations (parent_id, child_id) VALUES " + strings.Join(rows, ", ")
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return err
	}

	// Every product gets one or two categories.
	rows = rows[:0]
	args = args[:0]
	for id := 1; id <= total; id++ {
		first := rng.Intn(5) + 1
		cats := []int{first}
		if rng.Float64() < 0.4 {
			second := rng.Intn(5) + 1
			if second != first {
				cats = append(cats, second)
			}
		}
		for _, cat := range cats {
			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
			args = append(args, id, cat)
		}
	}
	query = "INSERT INTO product_categories (product_id, category_id) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedOrders(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	simpleFrom := parentCount + 1
	simpleTo := parentCount + parentCount*childrenPerItem + standaloneCount

	rows := []string{}
	args := []any{}
	itemCounts := make([]int, orderCount)
	for i := 0; i < orderCount; i++ {
		storeID := rng.Intn(2) + 1
		// Some orders are guest checkouts with no customer.
		var customerID any
		if rng.Float64() < 0.7 {
			customerID = rng.Intn(customerCount) + 1
		}
		itemCounts[i] = rng.Intn(3) + 1

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, storeID, customerID)
	}
	query := "INSERT INTO orders (store_id, customer_id) VALUES " + strings.Join(rows, ", ")
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return err
	}

	// Carts hold simple products; the bridge resolves parents itself.
	rows = rows[:0]
	args = args[:0]
	for orderID := 1; orderID <= orderCount; orderID++ {
		for n := 0; n < itemCounts[orderID-1]; n++ {
			productID := simpleFrom + rng.Intn(simpleTo-simpleFrom+1)
			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
			args = append(args, orderID, productID)
		}
	}
	query = "INSERT INTO order_items (order_id, product_id) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}
