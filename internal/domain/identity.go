package domain

// Identity is who the current visitor is: an anonymous session or a
// logged-in customer. Every recorded action is routed on this.
type Identity struct {
	SessionID  string
	CustomerID int64
}

func (i Identity) Authenticated() bool {
	return i.CustomerID > 0
}
