package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/richdynamix/similarproducts/internal/domain"
)

// GET /products/{productID}/upsells
func (h *Handler) GetUpsells(w http.ResponseWriter, r *http.Request) {
	productIDStr := chi.URLParam(r, "productID")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid productID parameter")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found",
				fmt.Sprintf("Product with ID %d does not exist", productID))
			return
		}
		// An unreachable catalog still must not break the page.
		log.Printf("[handler] load product %d: %v", productID, err)
		writeJSON(w, http.StatusOK, UpsellResponse{ProductID: productID, Source: SourceDefault})
		return
	}

	ids, ok := h.selector.Select(r.Context(), product, identity(r))
	if !ok {
		writeJSON(w, http.StatusOK, UpsellResponse{ProductID: productID, Source: SourceDefault})
		return
	}
	writeJSON(w, http.StatusOK, UpsellResponse{
		ProductID:  productID,
		Source:     SourceEngine,
		ProductIDs: ids,
	})
}
