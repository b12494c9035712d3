package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/richdynamix/similarproducts/internal/buffer"
	"github.com/richdynamix/similarproducts/internal/domain"
	"github.com/richdynamix/similarproducts/internal/handler"
	"github.com/richdynamix/similarproducts/internal/recorder"
	"github.com/richdynamix/similarproducts/internal/router"
	"github.com/richdynamix/similarproducts/internal/upsell"
)

type engineCall struct {
	method     string
	customerID int64
	itemID     int64
	action     string
}

type fakeEngine struct {
	calls []engineCall
	ids   []int64
}

func (f *fakeEngine) RegisterUser(ctx context.Context, customerID int64) error {
	f.calls = append(f.calls, engineCall{method: "registerUser", customerID: customerID})
	return nil
}

func (f *fakeEngine) RegisterItem(ctx context.Context, itemID int64, itemTypes string) error {
	f.calls = append(f.calls, engineCall{method: "registerItem", itemID: itemID})
	return nil
}

func (f *fakeEngine) RecordAction(ctx context.Context, customerID, itemID int64, action string, rate int) error {
	f.calls = append(f.calls, engineCall{method: "recordAction", customerID: customerID, itemID: itemID, action: action})
	return nil
}

func (f *fakeEngine) QuerySimilar(ctx context.Context, itemID int64, n int, itemTypes string) ([]int64, error) {
	return f.ids, nil
}

type fakeCatalog struct {
	products map[int64]*domain.Product
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	if p, ok := f.products[productID]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeCatalog) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func newTestServer(eng *fakeEngine, buf buffer.Buffer) http.Handler {
	cat := &fakeCatalog{products: map[int64]*domain.Product{
		42: {ID: 42, TypeID: "configurable", Categories: []string{"Shoes", "Sale"}},
	}}
	rec := recorder.NewRecorder(eng, buf, cat, true)
	sel := upsell.NewSelector(eng, true, 5, false)
	return router.Setup(handler.NewHandler(rec, sel, cat))
}

func TestViewEventAuthenticated(t *testing.T) {
	eng := &fakeEngine{}
	srv := newTestServer(eng, buffer.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/events/view", strings.NewReader(`{"product_id": 42}`))
	req.Header.Set("X-Session-ID", "s1")
	req.Header.Set("X-Customer-ID", "7")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	if len(eng.calls) != 2 || eng.calls[1].action != "view" || eng.calls[1].customerID != 7 {
		t.Errorf("unexpected engine calls %+v", eng.calls)
	}
}

func TestViewEventAnonymousBuffers(t *testing.T) {
	eng := &fakeEngine{}
	buf := buffer.NewMemory()
	srv := newTestServer(eng, buf)

	req := httptest.NewRequest(http.MethodPost, "/events/view", strings.NewReader(`{"product_id": 42}`))
	req.Header.Set("X-Session-ID", "s1")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	if len(eng.calls) != 0 {
		t.Errorf("anonymous view must not reach the engine, got %+v", eng.calls)
	}
	l, _ := buf.Drain(context.Background(), "s1")
	if l == nil || len(l.Views) != 1 || l.Views[0] != 42 {
		t.Errorf("expected buffered view, got %+v", l)
	}
}

func TestViewEventBadPayload(t *testing.T) {
	srv := newTestServer(&fakeEngine{}, buffer.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/events/view", strings.NewReader(`{"product_id": 0}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLoginEventReplaysBuffer(t *testing.T) {
	eng := &fakeEngine{}
	buf := buffer.NewMemory()
	srv := newTestServer(eng, buf)
	buf.RecordView(context.Background(), "s1", 42)

	req := httptest.NewRequest(http.MethodPost, "/events/login", strings.NewReader(`{"customer_id": 3}`))
	req.Header.Set("X-Session-ID", "s1")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	if len(eng.calls) != 3 || eng.calls[0].method != "registerUser" || eng.calls[2].action != "view" {
		t.Errorf("unexpected replay calls %+v", eng.calls)
	}
}

func TestUpsellsFromEngine(t *testing.T) {
	eng := &fakeEngine{ids: []int64{9, 3, 7}}
	srv := newTestServer(eng, buffer.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/products/42/upsells", nil)
	req.Header.Set("X-Session-ID", "s1")
	req.Header.Set("X-Customer-ID", "7")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"source":"engine"`) {
		t.Errorf("expected engine source, got %s", body)
	}
	if !strings.Contains(body, `[9,3,7]`) {
		t.Errorf("expected engine order preserved, got %s", body)
	}
}

func TestUpsellsAnonymousFallsBack(t *testing.T) {
	eng := &fakeEngine{ids: []int64{9, 3, 7}}
	srv := newTestServer(eng, buffer.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/products/42/upsells", nil)
	req.Header.Set("X-Session-ID", "s1")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"source":"default"`) {
		t.Errorf("expected default source, got %s", w.Body.String())
	}
}

func TestUpsellsUnknownProduct(t *testing.T) {
	srv := newTestServer(&fakeEngine{}, buffer.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/products/999/upsells", nil)
	req.Header.Set("X-Customer-ID", "7")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSessionAssignedWhenMissing(t *testing.T) {
	srv := newTestServer(&fakeEngine{}, buffer.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/events/view", strings.NewReader(`{"product_id": 42}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "sp_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie to be assigned")
	}
}
