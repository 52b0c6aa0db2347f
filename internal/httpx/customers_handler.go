package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abcretail/storefront/internal/domain"
)

type CustomersHandler struct {
	Customers domain.CustomerStore
	Orders    domain.OrderStore
}

func (h *CustomersHandler) Register(r *chi.Mux) {
	r.Post("/CreateCustomer", h.create)
	r.Get("/GetCustomers", h.list)
	r.Get("/customers/{id}", h.getByID)
	r.Put("/UpdateCustomer", h.update)
	r.Delete("/customers/{id}", h.delete)
}

func (h *CustomersHandler) create(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer data"})
		return
	}
	if err := h.Customers.Create(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CustomersHandler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomersHandler) getByID(w http.ResponseWriter, r *http.Request) {
	c, err := h.Customers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomersHandler) update(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer data"})
		return
	}
	if err := h.Customers.Update(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// delete refuses to remove a customer that committed orders still reference.
func (h *CustomersHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	referenced, err := h.Orders.ExistsForCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if referenced {
		writeError(w, domain.ErrCustomerReferenced)
		return
	}
	if err := h.Customers.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
