package backend

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.listProducts(w, r, catalog.Filter{Search: q.Get("search"), Category: q.Get("category")})
}

func (h *Handler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, catalog.Filter{Category: chi.URLParam(r, "category")})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request, f catalog.Filter) {
	products, err := h.products.List(r.Context(), f)
	if err != nil {
		h.logger.WithError(err).Error("list products")
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
