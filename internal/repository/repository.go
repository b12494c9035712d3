package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repository reads the storefront's catalog and sales data. The schema
// belongs to the storefront; this side only queries it.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
