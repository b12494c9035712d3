package backfill

import (
	"context"
	"errors"
	"testing"

	"github.com/richdynamix/similarproducts/internal/domain"
)

type engineCall struct {
	method     string
	customerID int64
	itemID     int64
	action     string
}

type fakeEngine struct {
	calls    []engineCall
	failItem int64 // RegisterItem fails for this item id
}

func (f *fakeEngine) RegisterUser(ctx context.Context, customerID int64) error {
	f.calls = append(f.calls, engineCall{method: "registerUser", customerID: customerID})
	return nil
}

func (f *fakeEngine) RegisterItem(ctx context.Context, itemID int64, itemTypes string) error {
	f.calls = append(f.calls, engineCall{method: "registerItem", itemID: itemID})
	if f.failItem != 0 && itemID == f.failItem {
		return errors.New("engine rejected item")
	}
	return nil
}

func (f *fakeEngine) RecordAction(ctx context.Context, customerID, itemID int64, action string, rate int) error {
	f.calls = append(f.calls, engineCall{method: "recordAction", customerID: customerID, itemID: itemID, action: action})
	return nil
}

type fakeCatalog struct {
	stores   []domain.Store
	orders   map[int64][]domain.Order
	products map[int64]*domain.Product
}

func (f *fakeCatalog) ListStores(ctx context.Context) ([]domain.Store, error) {
	return f.stores, nil
}

func (f *fakeCatalog) ListOrdersByStore(ctx context.Context, storeID int64) ([]domain.Order, error) {
	return f.orders[storeID], nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	if p, ok := f.products[productID]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		stores: []domain.Store{{ID: 1, Name: "Default Store"}, {ID: 2, Name: "Outlet Store"}},
		orders: map[int64][]domain.Order{
			1: {
				{ID: 10, CustomerID: 7, Items: []domain.OrderItem{{ProductID: 100}, {ProductID: 300}}},
			},
			2: {
				{ID: 20, CustomerID: 8, Items: []domain.OrderItem{{ProductID: 300}}},
			},
		},
		products: map[int64]*domain.Product{
			100: {ID: 100, TypeID: "simple", ParentID: 200, Categories: []string{"Shoes"}},
			300: {ID: 300, TypeID: "simple"},
		},
	}
}

func TestRunAllStores(t *testing.T) {
	eng := &fakeEngine{}
	sum, err := NewImporter(eng, testCatalog()).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sum.Stores != 2 || sum.Orders != 2 || sum.Conversions != 3 || sum.Failed != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}

	// Every conversion is attributed to the parent where one exists.
	var conversions []engineCall
	for _, c := range eng.calls {
		if c.action == "conversion" {
			conversions = append(conversions, c)
		}
	}
	if len(conversions) != 3 {
		t.Fatalf("expected 3 conversions, got %+v", conversions)
	}
	if conversions[0].itemID != 200 || conversions[0].customerID != 7 {
		t.Errorf("expected parent-attributed conversion for customer 7, got %+v", conversions[0])
	}
}

func TestRunStoreFilter(t *testing.T) {
	eng := &fakeEngine{}
	sum, err := NewImporter(eng, testCatalog()).Run(context.Background(), []string{"Outlet Store"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sum.Stores != 1 || sum.Orders != 1 {
		t.Errorf("expected only Outlet Store processed, got %+v", sum)
	}
	for _, c := range eng.calls {
		if c.method == "registerUser" && c.customerID != 8 {
			t.Errorf("expected only customer 8, got %+v", c)
		}
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	eng := &fakeEngine{failItem: 200}
	sum, err := NewImporter(eng, testCatalog()).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("a failed record must not abort the run: %v", err)
	}

	if sum.Failed != 1 {
		t.Errorf("expected 1 failure, got %+v", sum)
	}
	// The remaining items still went through.
	if sum.Conversions != 2 {
		t.Errorf("expected 2 conversions despite the failure, got %+v", sum)
	}
}
