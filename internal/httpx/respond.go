package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abcretail/storefront/internal/domain"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrCustomerReferenced):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
