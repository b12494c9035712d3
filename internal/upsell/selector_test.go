package upsell

import (
	"context"
	"errors"
	"testing"

	"github.com/richdynamix/similarproducts/internal/domain"
)

type fakeQuerier struct {
	ids       []int64
	err       error
	calls     int
	itemTypes string
}

func (f *fakeQuerier) QuerySimilar(ctx context.Context, itemID int64, n int, itemTypes string) ([]int64, error) {
	f.calls++
	f.itemTypes = itemTypes
	return f.ids, f.err
}

var (
	testProduct   = &domain.Product{ID: 42, Categories: []string{"Shoes", "Sale"}}
	customer      = domain.Identity{SessionID: "s1", CustomerID: 7}
	guestIdentity = domain.Identity{SessionID: "s1"}
)

func TestSelectReturnsEngineOrder(t *testing.T) {
	q := &fakeQuerier{ids: []int64{9, 3, 7}}
	sel := NewSelector(q, true, 5, false)

	ids, ok := sel.Select(context.Background(), testProduct, customer)
	if !ok {
		t.Fatal("expected engine result")
	}
	if len(ids) != 3 || ids[0] != 9 || ids[1] != 3 || ids[2] != 7 {
		t.Errorf("engine order must be preserved, got %v", ids)
	}
}

func TestSelectDisabledFallsBack(t *testing.T) {
	q := &fakeQuerier{ids: []int64{9}}
	sel := NewSelector(q, false, 5, false)

	if _, ok := sel.Select(context.Background(), testProduct, customer); ok {
		t.Error("disabled selector must fall back")
	}
	if q.calls != 0 {
		t.Error("disabled selector must not query the engine")
	}
}

func TestSelectAnonymousFallsBack(t *testing.T) {
	q := &fakeQuerier{ids: []int64{9}}
	sel := NewSelector(q, true, 5, false)

	if _, ok := sel.Select(context.Background(), testProduct, guestIdentity); ok {
		t.Error("anonymous visitors always get the default listing")
	}
	if q.calls != 0 {
		t.Error("anonymous request must not query the engine")
	}
}

func TestSelectEmptyResultFallsBack(t *testing.T) {
	sel := NewSelector(&fakeQuerier{}, true, 5, false)

	if _, ok := sel.Select(context.Background(), testProduct, customer); ok {
		t.Error("empty engine result must fall back")
	}
}

func TestSelectEngineErrorFallsBack(t *testing.T) {
	sel := NewSelector(&fakeQuerier{err: errors.New("engine down")}, true, 5, false)

	if _, ok := sel.Select(context.Background(), testProduct, customer); ok {
		t.Error("engine error must fall back")
	}
}

func TestSelectCategoryFilter(t *testing.T) {
	q := &fakeQuerier{ids: []int64{9}}
	sel := NewSelector(q, true, 5, true)

	sel.Select(context.Background(), testProduct, customer)
	if q.itemTypes != "Shoes,Sale" {
		t.Errorf("expected category filter Shoes,Sale, got %q", q.itemTypes)
	}

	// Filter off: no item types are sent.
	q2 := &fakeQuerier{ids: []int64{9}}
	sel2 := NewSelector(q2, true, 5, false)
	sel2.Select(context.Background(), testProduct, customer)
	if q2.itemTypes != "" {
		t.Errorf("expected no category filter, got %q", q2.itemTypes)
	}
}
