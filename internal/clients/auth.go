package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// AuthClient calls the auth service's /verify boundary. Token validity
// is established remotely on every call; it is never cached here.
type AuthClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type verifyReq struct {
	Token string `json:"token"`
}

type verifyResp struct {
	OK   bool     `json:"ok"`
	User Identity `json:"user"`
}

func (c *AuthClient) VerifyToken(ctx context.Context, token string) (Identity, error) {
	resp, err := postJSON(ctx, c.HTTP, c.BaseURL+"/verify", verifyReq{Token: token})
	if err != nil {
		return Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, decodeAPIError(resp)
	}
	var vr verifyResp
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return Identity{}, err
	}
	return vr.User, nil
}
