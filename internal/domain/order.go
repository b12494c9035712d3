package domain

type Store struct {
	ID   int64
	Name string
}

type OrderItem struct {
	ProductID int64
}

type Order struct {
	ID         int64
	StoreID    int64
	CustomerID int64 // 0 for guest checkouts
	Items      []OrderItem
}
