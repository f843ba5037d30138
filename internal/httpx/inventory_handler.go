package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
	"github.com/ariefcatur/go-retail-checkout.git/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// InventoryHandler serves the stock ledger boundary. Product reads go
// through a short-lived redis cache; every mutation (including
// deduction) drops the cache.
type InventoryHandler struct {
	Store inventory.Store
	Auth  Verifier
	Redis *redis.Client // optional
}

type deductStockReq struct {
	Items []inventory.ItemQty `json:"items"`
}

func (h *InventoryHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Post("/products", h.createProduct)
	r.Put("/products/{id}", h.updateProduct)
	r.Delete("/products/{id}", h.deleteProduct)
	r.Post("/deduct_stock", h.deductStock)
}

func (h *InventoryHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.KeyProductList).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	ps, err := h.Store.List(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if ps == nil {
		ps = []inventory.Product{}
	}
	if h.Redis != nil {
		if b, err := json.Marshal(ps); err == nil {
			_ = h.Redis.Set(ctx, redisx.KeyProductList, b, redisx.TTLProductList).Err()
		}
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *InventoryHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in inventory.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := in.Validate(true); err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := h.Store.Create(ctx, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.dropProductCache(ctx)
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *InventoryHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.Auth); !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var in inventory.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in == (inventory.ProductInput{}) {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}
	if err := in.Validate(false); err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Update(ctx, id, in); err != nil {
		writeDomainError(w, err)
		return
	}
	h.dropProductCache(ctx)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *InventoryHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.Auth); !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		writeDomainError(w, err)
		return
	}
	h.dropProductCache(ctx)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *InventoryHandler) deductStock(w http.ResponseWriter, r *http.Request) {
	var req deductStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	total, err := h.Store.Deduct(ctx, req.Items)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.dropProductCache(ctx)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "total": total})
}

func (h *InventoryHandler) dropProductCache(ctx context.Context) {
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, redisx.KeyProductList).Err()
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
