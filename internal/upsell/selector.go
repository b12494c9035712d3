package upsell

import (
	"context"
	"log"

	"github.com/richdynamix/similarproducts/internal/domain"
)

// SimilarityQuerier is the read side of the engine client.
type SimilarityQuerier interface {
	QuerySimilar(ctx context.Context, itemID int64, n int, itemTypes string) ([]int64, error)
}

// Selector decides what fills the upsell listing of a product page.
type Selector struct {
	engine          SimilarityQuerier
	enabled         bool
	productCount    int
	categoryResults bool
}

func NewSelector(eng SimilarityQuerier, enabled bool, productCount int, categoryResults bool) *Selector {
	return &Selector{
		engine:          eng,
		enabled:         enabled,
		productCount:    productCount,
		categoryResults: categoryResults,
	}
}

// Select returns the engine's ranked products for the listing. ok is
// false whenever the storefront should fall back to its own upsell
// computation: feature off, anonymous visitor, engine failure, or an
// empty result. The engine's rank order is authoritative and comes
// back untouched.
func (s *Selector) Select(ctx context.Context, product *domain.Product, id domain.Identity) ([]int64, bool) {
	if !s.enabled || !id.Authenticated() {
		return nil, false
	}

	itemTypes := ""
	if s.categoryResults {
		itemTypes = product.CategoryLabels()
	}

	ids, err := s.engine.QuerySimilar(ctx, product.ID, s.productCount, itemTypes)
	if err != nil {
		log.Printf("[upsell] query similar for product %d: %v", product.ID, err)
		return nil, false
	}
	if len(ids) == 0 {
		return nil, false
	}
	return ids, true
}
