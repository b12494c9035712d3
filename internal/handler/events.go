package handler

import (
	"encoding/json"
	"net/http"

	"github.com/richdynamix/similarproducts/internal/domain"
)

type viewEventRequest struct {
	ProductID int64 `json:"product_id"`
}

type rateEventRequest struct {
	ProductID int64 `json:"product_id"`
	Ratings   []int `json:"ratings"`
}

type purchaseEventRequest struct {
	OrderID int64 `json:"order_id"`
}

type loginEventRequest struct {
	CustomerID int64 `json:"customer_id"`
}

// Event endpoints answer 202 whatever the engine's health: the
// storefront action already happened and must not be failed from here.

// POST /events/view
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	var req viewEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid product_id parameter")
		return
	}

	h.recorder.Handle(r.Context(), domain.Event{
		Kind:      domain.EventView,
		Identity:  identity(r),
		ProductID: req.ProductID,
	})
	writeJSON(w, http.StatusAccepted, EventResponse{Status: "accepted"})
}

// POST /events/rate
func (h *Handler) RecordRating(w http.ResponseWriter, r *http.Request) {
	var req rateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID <= 0 || len(req.Ratings) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid rating payload")
		return
	}
	for _, v := range req.Ratings {
		if v < 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid rating payload")
			return
		}
	}

	h.recorder.Handle(r.Context(), domain.Event{
		Kind:       domain.EventRate,
		Identity:   identity(r),
		ProductID:  req.ProductID,
		RawRatings: req.Ratings,
	})
	writeJSON(w, http.StatusAccepted, EventResponse{Status: "accepted"})
}

// POST /events/purchase
func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid order_id parameter")
		return
	}

	h.recorder.Handle(r.Context(), domain.Event{
		Kind:     domain.EventPurchase,
		Identity: identity(r),
		OrderID:  req.OrderID,
	})
	writeJSON(w, http.StatusAccepted, EventResponse{Status: "accepted"})
}

// POST /events/login
func (h *Handler) RecordLogin(w http.ResponseWriter, r *http.Request) {
	var req loginEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CustomerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid customer_id parameter")
		return
	}

	h.recorder.Handle(r.Context(), domain.Event{
		Kind:       domain.EventLogin,
		Identity:   domain.Identity{SessionID: sessionID(r), CustomerID: req.CustomerID},
		CustomerID: req.CustomerID,
	})
	writeJSON(w, http.StatusAccepted, EventResponse{Status: "accepted"})
}
