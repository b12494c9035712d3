package domain

import "strings"

const ProductTypeSimple = "simple"

type Product struct {
	ID         int64
	TypeID     string
	ParentID   int64 // 0 when the product has no composite parent
	Categories []string
}

// CategoryLabels renders the category names as the comma-joined item
// type string the engine expects.
func (p *Product) CategoryLabels() string {
	return strings.Join(p.Categories, ",")
}

// AttributedID is the product an action is recorded against. A simple
// product belonging to a grouped or configurable parent is attributed
// to the parent, since upsells are only shown at the parent level.
func (p *Product) AttributedID() int64 {
	if p.TypeID == ProductTypeSimple && p.ParentID > 0 {
		return p.ParentID
	}
	return p.ID
}
