package domain

import "testing"

func TestCategoryLabels(t *testing.T) {
	p := &Product{ID: 42, Categories: []string{"Shoes", "Sale"}}
	if got := p.CategoryLabels(); got != "Shoes,Sale" {
		t.Errorf("expected Shoes,Sale, got %q", got)
	}

	empty := &Product{ID: 43}
	if got := empty.CategoryLabels(); got != "" {
		t.Errorf("expected empty labels, got %q", got)
	}
}

func TestAttributedID(t *testing.T) {
	// Simple product with a configurable parent goes to the parent.
	child := &Product{ID: 100, TypeID: ProductTypeSimple, ParentID: 200}
	if got := child.AttributedID(); got != 200 {
		t.Errorf("expected parent id 200, got %d", got)
	}

	// Simple product without a parent stays itself.
	standalone := &Product{ID: 300, TypeID: ProductTypeSimple}
	if got := standalone.AttributedID(); got != 300 {
		t.Errorf("expected own id 300, got %d", got)
	}

	// Non-simple products are never re-attributed.
	parent := &Product{ID: 200, TypeID: "configurable", ParentID: 999}
	if got := parent.AttributedID(); got != 200 {
		t.Errorf("expected own id 200, got %d", got)
	}
}
