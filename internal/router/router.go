package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/richdynamix/similarproducts/internal/handler"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(handler.EnsureSession)

	// Routes
	r.Post("/events/view", h.RecordView)
	r.Post("/events/rate", h.RecordRating)
	r.Post("/events/purchase", h.RecordPurchase)
	r.Post("/events/login", h.RecordLogin)
	r.Get("/products/{productID}/upsells", h.GetUpsells)
	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
