package handler

import (
	"encoding/json"
	"net/http"

	"github.com/richdynamix/similarproducts/internal/recorder"
	"github.com/richdynamix/similarproducts/internal/upsell"
)

type Handler struct {
	recorder *recorder.Recorder
	selector *upsell.Selector
	catalog  recorder.Catalog
}

func NewHandler(rec *recorder.Recorder, sel *upsell.Selector, cat recorder.Catalog) *Handler {
	return &Handler{recorder: rec, selector: sel, catalog: cat}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
