package recorder

import (
	"context"
	"log"

	"github.com/richdynamix/similarproducts/internal/buffer"
	"github.com/richdynamix/similarproducts/internal/domain"
	"github.com/richdynamix/similarproducts/internal/engine"
)

// EngineWriter is the write side of the engine client.
type EngineWriter interface {
	RegisterUser(ctx context.Context, customerID int64) error
	RegisterItem(ctx context.Context, itemID int64, itemTypes string) error
	RecordAction(ctx context.Context, customerID, itemID int64, action string, rate int) error
}

// Catalog resolves storefront products and orders for attribution.
type Catalog interface {
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
}

// Recorder translates storefront lifecycle events into engine actions.
// Anonymous activity goes to the guest buffer; login replays it under
// the customer's identity.
type Recorder struct {
	engine  EngineWriter
	buffer  buffer.Buffer
	catalog Catalog
	enabled bool
}

func NewRecorder(eng EngineWriter, buf buffer.Buffer, cat Catalog, enabled bool) *Recorder {
	return &Recorder{engine: eng, buffer: buf, catalog: cat, enabled: enabled}
}

// Handle consumes one storefront lifecycle event. It never returns an
// error: the shopper's action must succeed whatever the engine's
// health, so every failure is logged and dropped here.
func (r *Recorder) Handle(ctx context.Context, ev domain.Event) {
	if !r.enabled {
		return
	}

	switch ev.Kind {
	case domain.EventView:
		r.handleView(ctx, ev)
	case domain.EventRate:
		r.handleRate(ctx, ev)
	case domain.EventPurchase:
		r.handlePurchase(ctx, ev)
	case domain.EventLogin:
		r.handleLogin(ctx, ev)
	default:
		log.Printf("[recorder] unknown event kind %q", ev.Kind)
	}
}

func (r *Recorder) handleView(ctx context.Context, ev domain.Event) {
	if !ev.Identity.Authenticated() {
		if err := r.buffer.RecordView(ctx, ev.Identity.SessionID, ev.ProductID); err != nil {
			log.Printf("[recorder] buffer view for session %s: %v", ev.Identity.SessionID, err)
		}
		return
	}
	r.sendAction(ctx, ev.Identity.CustomerID, ev.ProductID, engine.ActionView, 0)
}

func (r *Recorder) handleRate(ctx context.Context, ev domain.Event) {
	value := NormalizeRating(ev.RawRatings)
	if value == 0 {
		// nothing usable to record
		return
	}

	if !ev.Identity.Authenticated() {
		if err := r.buffer.RecordRating(ctx, ev.Identity.SessionID, ev.ProductID, value); err != nil {
			log.Printf("[recorder] buffer rating for session %s: %v", ev.Identity.SessionID, err)
		}
		return
	}
	r.sendAction(ctx, ev.Identity.CustomerID, ev.ProductID, engine.ActionRate, value)
}

func (r *Recorder) handlePurchase(ctx context.Context, ev domain.Event) {
	// Checkout requires login; a purchase without identity is dropped.
	if !ev.Identity.Authenticated() {
		return
	}

	order, err := r.catalog.GetOrder(ctx, ev.OrderID)
	if err != nil {
		log.Printf("[recorder] load order %d: %v", ev.OrderID, err)
		return
	}
	for _, item := range order.Items {
		r.sendAction(ctx, ev.Identity.CustomerID, item.ProductID, engine.ActionConversion, 0)
	}
}

// handleLogin registers the customer and replays whatever the guest
// session buffered: views first, in original order, then ratings.
func (r *Recorder) handleLogin(ctx context.Context, ev domain.Event) {
	if err := r.engine.RegisterUser(ctx, ev.CustomerID); err != nil {
		log.Printf("[recorder] register user %d: %v", ev.CustomerID, err)
	}

	guestLog, err := r.buffer.Drain(ctx, ev.Identity.SessionID)
	if err != nil {
		log.Printf("[recorder] drain session %s: %v", ev.Identity.SessionID, err)
		return
	}
	if guestLog == nil || guestLog.Empty() {
		return
	}

	for _, productID := range guestLog.Views {
		if productID <= 0 {
			log.Printf("[recorder] skipping corrupt buffered view %d for session %s", productID, ev.Identity.SessionID)
			continue
		}
		r.sendAction(ctx, ev.CustomerID, productID, engine.ActionView, 0)
	}
	for _, entry := range guestLog.Ratings {
		if entry.ProductID <= 0 || entry.Value < 1 || entry.Value > 5 {
			log.Printf("[recorder] skipping corrupt buffered rating %+v for session %s", entry, ev.Identity.SessionID)
			continue
		}
		r.sendAction(ctx, ev.CustomerID, entry.ProductID, engine.ActionRate, entry.Value)
	}
}

// sendAction registers the attributed item, then records the action
// against it. When the catalog cannot resolve the product, the raw ID
// is still sent: a slightly poorer item record beats a lost action.
func (r *Recorder) sendAction(ctx context.Context, customerID, productID int64, action string, rate int) {
	itemID := productID
	itemTypes := ""

	product, err := r.catalog.GetProduct(ctx, productID)
	if err != nil {
		log.Printf("[recorder] load product %d: %v", productID, err)
	} else {
		itemID = product.AttributedID()
		itemTypes = product.CategoryLabels()
	}

	if err := r.engine.RegisterItem(ctx, itemID, itemTypes); err != nil {
		log.Printf("[recorder] register item %d: %v", itemID, err)
	}
	if err := r.engine.RecordAction(ctx, customerID, itemID, action, rate); err != nil {
		log.Printf("[recorder] record %s for item %d: %v", action, itemID, err)
	}
}
