package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
	"github.com/ariefcatur/go-retail-checkout.git/internal/sales"
	"github.com/go-chi/chi/v5"
)

// SaleAdminStore is the sale-row surface the handler needs beyond
// checkout itself.
type SaleAdminStore interface {
	List(ctx context.Context) ([]sales.Sale, error)
	Update(ctx context.Context, id int64, in sales.SaleInput) error
	Delete(ctx context.Context, id int64) error
}

type SalesHandler struct {
	Checkout *sales.Service
	Store    SaleAdminStore
	Auth     Verifier
}

type checkoutReq struct {
	Items []inventory.ItemQty `json:"items"`
}

func (h *SalesHandler) Register(r *chi.Mux) {
	r.Post("/checkout", h.checkout)
	r.Get("/sales", h.listSales)
	r.Put("/sales/{id}", h.updateSale)
	r.Delete("/sales/{id}", h.deleteSale)
}

func (h *SalesHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	// bounded by the deduction timeout plus a little slack for the
	// verify call and the local insert
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	saleID, total, err := h.Checkout.Checkout(ctx, bearerToken(r), req.Items)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sale_id": saleID, "total": total})
}

func (h *SalesHandler) listSales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Store.List(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if out == nil {
		out = []sales.Sale{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *SalesHandler) updateSale(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.Auth); !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	var in sales.SaleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := in.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Update(ctx, id, in); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *SalesHandler) deleteSale(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.Auth); !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
