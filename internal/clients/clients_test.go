package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
	"github.com/stretchr/testify/require"
)

func TestAuthClientVerifyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify", r.URL.Path)
		var req struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		if req.Token != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"user": map[string]string{"email": "bob@example.com", "role": "user"},
		})
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, time.Second)

	id, err := c.VerifyToken(context.Background(), "good")
	require.NoError(t, err)
	require.Equal(t, Identity{Email: "bob@example.com", Role: "user"}, id)

	_, err = c.VerifyToken(context.Background(), "bad")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "invalid token", apiErr.Message)
}

func TestInventoryClientDeductStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/deduct_stock", r.URL.Path)
		var req struct {
			Items []inventory.ItemQty `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		switch req.Items[0].ProductID {
		case 99:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Product 99 not found"})
		case 2:
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Insufficient stock for Bread"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "total": 132.0})
		}
	}))
	defer srv.Close()

	c := NewInventoryClient(srv.URL, time.Second)
	ctx := context.Background()

	total, err := c.DeductStock(ctx, []inventory.ItemQty{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)
	require.Equal(t, 132.0, total)

	_, err = c.DeductStock(ctx, []inventory.ItemQty{{ProductID: 99, Quantity: 1}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "Product 99 not found", apiErr.Message)

	_, err = c.DeductStock(ctx, []inventory.ItemQty{{ProductID: 2, Quantity: 1}})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
}

// A timed-out deduction surfaces as a transport error, not an
// APIError: the orchestrator must treat it as a hard failure.
func TestInventoryClientTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewInventoryClient(srv.URL, 50*time.Millisecond)
	_, err := c.DeductStock(context.Background(), []inventory.ItemQty{{ProductID: 1, Quantity: 1}})
	require.Error(t, err)
	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}
