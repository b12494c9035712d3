package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/richdynamix/similarproducts/internal/backfill"
	"github.com/richdynamix/similarproducts/internal/config"
	"github.com/richdynamix/similarproducts/internal/engine"
	"github.com/richdynamix/similarproducts/internal/repository"
)

// One-shot import of all historical orders into the engine.
func main() {
	storesFlag := flag.String("stores", "", "process only these stores (comma-separated names)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}
	// The backfill talks to the engine even with the live bridge off.
	if err := cfg.ValidateEngine(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	var storeNames []string
	if *storesFlag != "" {
		storeNames = strings.Split(*storesFlag, ",")
	}
	if len(storeNames) > 0 {
		log.Printf("selected stores: %s", strings.Join(storeNames, ", "))
	} else {
		log.Println("selected stores: all")
	}

	engineClient := engine.NewClient(cfg.EngineURL(), cfg.PredictKey, cfg.EngineName, cfg.EngineTimeout)
	importer := backfill.NewImporter(engineClient, repository.NewRepository(pool))

	sum, err := importer.Run(ctx, storeNames)
	if err != nil {
		log.Fatalf("backfill failed: %v", err)
	}
	log.Printf("done processing: stores=%d orders=%d conversions=%d failed=%d",
		sum.Stores, sum.Orders, sum.Conversions, sum.Failed)
}
