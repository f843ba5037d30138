package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/ariefcatur/go-retail-checkout.git/internal/clients"
	"github.com/ariefcatur/go-retail-checkout.git/internal/token"
)

// Verifier is the remote token-verification boundary as seen by the
// handlers. The auth service's own handler verifies locally; everyone
// else goes over the wire.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (clients.Identity, error)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return after
	}
	return ""
}

// requireAdmin verifies the caller's token remotely and checks the
// role embedded in the verified claims. Missing or invalid token is
// 401; a valid token without the admin role is 403. On failure the
// response has been written and ok is false.
func requireAdmin(w http.ResponseWriter, r *http.Request, v Verifier) (clients.Identity, bool) {
	tok := bearerToken(r)
	if tok == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return clients.Identity{}, false
	}
	id, err := v.VerifyToken(r.Context(), tok)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return clients.Identity{}, false
	}
	if id.Role != token.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin only")
		return clients.Identity{}, false
	}
	return id, true
}
