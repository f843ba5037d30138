package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-retail-checkout.git/internal/clients"
	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
	"github.com/ariefcatur/go-retail-checkout.git/internal/sales"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainError maps domain errors onto the wire taxonomy:
// validation 400, auth 401, missing entity 404, downstream failure
// 500. Errors from a downstream service keep their original status and
// message.
func writeDomainError(w http.ResponseWriter, err error) {
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.Status, apiErr.Message)
		return
	}
	var notFound *inventory.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, notFound.Error())
		return
	}
	var insufficient *inventory.InsufficientStockError
	if errors.As(err, &insufficient) {
		writeError(w, http.StatusBadRequest, insufficient.Error())
		return
	}
	var productInvalid *inventory.ValidationError
	if errors.As(err, &productInvalid) {
		writeError(w, http.StatusBadRequest, productInvalid.Error())
		return
	}
	var saleInvalid *sales.ValidationError
	if errors.As(err, &saleInvalid) {
		writeError(w, http.StatusBadRequest, saleInvalid.Error())
		return
	}
	switch {
	case errors.Is(err, sales.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, sales.ErrUnauthorized.Error())
	case errors.Is(err, sales.ErrSaleNotFound):
		writeError(w, http.StatusNotFound, sales.ErrSaleNotFound.Error())
	case errors.Is(err, sales.ErrCheckoutFailed):
		writeError(w, http.StatusInternalServerError, sales.ErrCheckoutFailed.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
