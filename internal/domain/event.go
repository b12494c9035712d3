package domain

type EventKind string

const (
	EventView     EventKind = "view"
	EventRate     EventKind = "rate"
	EventPurchase EventKind = "purchase"
	EventLogin    EventKind = "login"
)

// Event is one storefront lifecycle event delivered to the recorder.
// Only the fields relevant to its Kind are set.
type Event struct {
	Kind     EventKind
	Identity Identity

	ProductID  int64 // view, rate
	RawRatings []int // rate
	OrderID    int64 // purchase
	CustomerID int64 // login
}
