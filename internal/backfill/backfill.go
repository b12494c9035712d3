package backfill

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/richdynamix/similarproducts/internal/domain"
	"github.com/richdynamix/similarproducts/internal/engine"
)

// EngineWriter is the write side of the engine client.
type EngineWriter interface {
	RegisterUser(ctx context.Context, customerID int64) error
	RegisterItem(ctx context.Context, itemID int64, itemTypes string) error
	RecordAction(ctx context.Context, customerID, itemID int64, action string, rate int) error
}

// Catalog is what the importer reads from the storefront.
type Catalog interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	ListOrdersByStore(ctx context.Context, storeID int64) ([]domain.Order, error)
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
}

type Summary struct {
	Stores      int
	Orders      int
	Conversions int
	Failed      int
}

// Importer replays historical orders into the engine as conversion
// actions. Past views and ratings cannot be reconstructed, so
// conversions are all it records.
type Importer struct {
	engine  EngineWriter
	catalog Catalog
}

func NewImporter(eng EngineWriter, cat Catalog) *Importer {
	return &Importer{engine: eng, catalog: cat}
}

// Run processes every store, or only those named in storeNames when
// the filter is non-empty. One bad record never aborts the run.
func (i *Importer) Run(ctx context.Context, storeNames []string) (*Summary, error) {
	stores, err := i.catalog.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	want := make(map[string]bool, len(storeNames))
	for _, name := range storeNames {
		want[strings.TrimSpace(name)] = true
	}

	sum := &Summary{}
	for _, store := range stores {
		if len(want) > 0 && !want[store.Name] {
			continue
		}
		log.Printf("[backfill] processing store %q", store.Name)
		sum.Stores++
		i.processStore(ctx, store, sum)
	}
	return sum, nil
}

func (i *Importer) processStore(ctx context.Context, store domain.Store, sum *Summary) {
	orders, err := i.catalog.ListOrdersByStore(ctx, store.ID)
	if err != nil {
		log.Printf("[backfill] list orders for store %q: %v", store.Name, err)
		sum.Failed++
		return
	}

	for _, order := range orders {
		sum.Orders++
		if err := i.engine.RegisterUser(ctx, order.CustomerID); err != nil {
			log.Printf("[backfill] register customer %d: %v", order.CustomerID, err)
			sum.Failed++
		}
		for _, item := range order.Items {
			if err := i.replayConversion(ctx, order.CustomerID, item.ProductID); err != nil {
				log.Printf("[backfill] order %d item %d: %v", order.ID, item.ProductID, err)
				sum.Failed++
				continue
			}
			sum.Conversions++
		}
	}
}

func (i *Importer) replayConversion(ctx context.Context, customerID, productID int64) error {
	itemID := productID
	itemTypes := ""

	product, err := i.catalog.GetProduct(ctx, productID)
	if err != nil {
		log.Printf("[backfill] load product %d: %v", productID, err)
	} else {
		itemID = product.AttributedID()
		itemTypes = product.CategoryLabels()
	}

	if err := i.engine.RegisterItem(ctx, itemID, itemTypes); err != nil {
		return err
	}
	return i.engine.RecordAction(ctx, customerID, itemID, engine.ActionConversion, 0)
}
