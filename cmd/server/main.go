package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/richdynamix/similarproducts/internal/buffer"
	"github.com/richdynamix/similarproducts/internal/config"
	"github.com/richdynamix/similarproducts/internal/engine"
	"github.com/richdynamix/similarproducts/internal/handler"
	"github.com/richdynamix/similarproducts/internal/recorder"
	"github.com/richdynamix/similarproducts/internal/repository"
	"github.com/richdynamix/similarproducts/internal/router"
	"github.com/richdynamix/similarproducts/internal/upsell"
	"github.com/richdynamix/similarproducts/seeds"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	ctx := context.Background()

	// ------------ PostgreSQL (storefront read model) ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to parse database config %v", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatalf("database not ready: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// ------------ Dev subcommands ---------------
	// The storefront owns this schema in production; migrations and
	// seed data exist for the demo environment only.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate-up":
			if err := migrateUp(ctx, pool); err != nil {
				log.Fatalf("failed to migrate up %v", err)
			}
			return
		case "migrate-down":
			if err := migrateDown(ctx, pool); err != nil {
				log.Fatalf("failed to migrate down %v", err)
			}
			return
		case "seed":
			if err := seeds.Setup(ctx, pool); err != nil {
				log.Fatalf("failed to seed %v", err)
			}
			return
		default:
			log.Fatalf("unknown command %q", os.Args[1])
		}
	}

	// ------------ Redis (guest action buffer) ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis config %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	guestBuffer := buffer.NewRedis(redisClient, cfg.GuestBufferTTL)
	if err := guestBuffer.Ping(ctx); err != nil {
		log.Fatalf("failed to connect to redis %v", err)
	}
	log.Println("connected to Redis")

	// ---------------- Wiring --------------------
	repo := repository.NewRepository(pool)
	engineClient := engine.NewClient(cfg.EngineURL(), cfg.PredictKey, cfg.EngineName, cfg.EngineTimeout)
	rec := recorder.NewRecorder(engineClient, guestBuffer, repo, cfg.Enabled)
	sel := upsell.NewSelector(engineClient, cfg.Enabled, cfg.ProductCount, cfg.CategoryResults)
	h := handler.NewHandler(rec, sel, repo)

	// ---------------- Server --------------------
	log.Printf("Server running on %s", cfg.Addr())
	log.Fatal(http.ListenAndServe(cfg.Addr(), router.Setup(h)))
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Printf("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations applied successfully")
	return nil
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations dropped successfully")
	return nil
}
