package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
)

// InventoryClient calls the stock ledger's /deduct_stock boundary.
// The call is synchronous, bounded by the client timeout, and never
// retried: a timed-out deduction may or may not have been applied, so
// a blind retry could sell the same stock twice.
type InventoryClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewInventoryClient(baseURL string, timeout time.Duration) *InventoryClient {
	return &InventoryClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type deductReq struct {
	Items []inventory.ItemQty `json:"items"`
}

type deductResp struct {
	OK    bool    `json:"ok"`
	Total float64 `json:"total"`
}

func (c *InventoryClient) DeductStock(ctx context.Context, items []inventory.ItemQty) (float64, error) {
	resp, err := postJSON(ctx, c.HTTP, c.BaseURL+"/deduct_stock", deductReq{Items: items})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeAPIError(resp)
	}
	var dr deductResp
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return 0, err
	}
	return dr.Total, nil
}
