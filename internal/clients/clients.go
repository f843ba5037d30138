// Package clients holds the HTTP clients for the remote service
// boundaries (auth verify, inventory deduction). Callers depend on
// small interfaces of their own, so these concrete clients can be
// swapped for fakes in tests.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Identity is the verified caller identity as reported by the auth
// service.
type Identity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// APIError is a non-2xx application response from a downstream
// service. The orchestrator propagates it to the caller verbatim,
// status included.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type errBody struct {
	Error string `json:"error"`
}

func postJSON(ctx context.Context, hc *http.Client, url string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return hc.Do(req)
}

// decodeAPIError turns a non-2xx response into an *APIError, keeping
// the upstream status and message.
func decodeAPIError(resp *http.Response) error {
	var eb errBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil || eb.Error == "" {
		eb.Error = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: eb.Error}
}
