package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abcretail/storefront/internal/domain"
)

// OrdersHandler exposes the order collection. Creation does not write the
// store directly: it enqueues an intent that the fulfillment worker commits
// later, so a 201 here precedes the order row existing.
type OrdersHandler struct {
	Orders domain.OrderStore
	Queue  domain.IntentQueue
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/CreateOrder", h.create)
	r.Get("/GetOrders", h.list)
	r.Get("/orders/{id}", h.getByID)
	r.Put("/UpdateOrderStatus", h.updateStatus)
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var intent domain.OrderIntent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order data"})
		return
	}
	if intent.Empty() || intent.Quantity < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order data"})
		return
	}
	if intent.OrderedAt.IsZero() {
		intent.OrderedAt = time.Now().UTC()
	}
	intent.Status = domain.StatusSubmitted
	if intent.TotalCents == 0 {
		intent.TotalCents = intent.UnitPriceCents * int64(intent.Quantity)
	}

	eventID, err := h.Queue.Submit(r.Context(), intent)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "order submitted",
		"event_id": eventID,
	})
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) getByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil || order.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order data"})
		return
	}
	if err := h.Orders.Update(r.Context(), &order); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
