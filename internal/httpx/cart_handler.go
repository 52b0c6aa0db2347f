package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abcretail/storefront/internal/cart"
	"github.com/abcretail/storefront/internal/checkout"
)

// CartHandler exposes the owner-scoped cart and the checkout orchestrator.
// Authentication is handled upstream; the owner login handle rides in the
// path and every operation is filtered on it.
type CartHandler struct {
	Cart     *cart.Service
	Checkout *checkout.Service
}

type cartLineReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/cart/{owner}", h.view)
	r.Get("/cart/{owner}/count", h.count)
	r.Post("/cart/{owner}/items", h.addLine)
	r.Put("/cart/{owner}/items/{productID}", h.setQuantity)
	r.Delete("/cart/{owner}/items/{productID}", h.removeLine)
	r.Delete("/cart/{owner}", h.clear)
	r.Post("/checkout/{owner}", h.checkout)
}

func (h *CartHandler) view(w http.ResponseWriter, r *http.Request) {
	items, err := h.Cart.View(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CartHandler) count(w http.ResponseWriter, r *http.Request) {
	n, err := h.Cart.Count(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *CartHandler) addLine(w http.ResponseWriter, r *http.Request) {
	var req cartLineReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := h.Cart.AddLine(r.Context(), chi.URLParam(r, "owner"), req.ProductID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	err := h.Cart.SetQuantity(r.Context(), chi.URLParam(r, "owner"), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) removeLine(w http.ResponseWriter, r *http.Request) {
	err := h.Cart.RemoveLine(r.Context(), chi.URLParam(r, "owner"), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.ClearCart(r.Context(), chi.URLParam(r, "owner")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) checkout(w http.ResponseWriter, r *http.Request) {
	res, err := h.Checkout.Checkout(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
