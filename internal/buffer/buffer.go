package buffer

import "context"

// RatingEntry is one buffered product rating. Re-rating a product
// before login overwrites Value in place, keeping the entry's position.
type RatingEntry struct {
	ProductID int64 `json:"product_id"`
	Value     int   `json:"value"`
}

// Log holds everything one guest session did before logging in. Views
// are replayed in the order they happened.
type Log struct {
	Views   []int64       `json:"views"`
	Ratings []RatingEntry `json:"ratings"`
}

func (l *Log) Empty() bool {
	return len(l.Views) == 0 && len(l.Ratings) == 0
}

func (l *Log) addView(productID int64) {
	l.Views = append(l.Views, productID)
}

func (l *Log) addRating(productID int64, value int) {
	for i := range l.Ratings {
		if l.Ratings[i].ProductID == productID {
			l.Ratings[i].Value = value
			return
		}
	}
	l.Ratings = append(l.Ratings, RatingEntry{ProductID: productID, Value: value})
}

// Buffer accumulates guest actions per anonymous session until login
// drains them.
type Buffer interface {
	RecordView(ctx context.Context, sessionID string, productID int64) error
	RecordRating(ctx context.Context, sessionID string, productID int64, value int) error
	// Drain returns the session's full log and destroys it, so one
	// login replays it at most once. A session with nothing buffered
	// yields nil.
	Drain(ctx context.Context, sessionID string) (*Log, error)
}
