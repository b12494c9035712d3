package handler

// Upsell listing sources.
const (
	SourceEngine  = "engine"
	SourceDefault = "default"
)

type UpsellResponse struct {
	ProductID  int64   `json:"product_id"`
	Source     string  `json:"source"`
	ProductIDs []int64 `json:"product_ids,omitempty"`
}

type EventResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
