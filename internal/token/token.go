package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Wire format: base64url(header).base64url(payload).base64url(sig),
// no padding. The header records only the signing algorithm; the
// payload is the claim set. Tokens are self-contained: nothing is
// persisted server-side, and there is no revocation, so expiry is the
// only mitigation for a leaked token.

var ErrInvalidToken = errors.New("invalid token")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Claims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type header struct {
	Alg string `json:"alg"`
}

// Codec issues and verifies bearer tokens with an injected Signer.
type Codec struct {
	signer Signer
	now    func() time.Time
}

func NewCodec(signer Signer) *Codec {
	return &Codec{signer: signer, now: time.Now}
}

// WithClock overrides the codec's clock. Tests only.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

var enc = base64.RawURLEncoding

func (c *Codec) Issue(email, role string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		Email:     email,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	hb, err := json.Marshal(header{Alg: c.signer.Alg()})
	if err != nil {
		return "", err
	}
	pb, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	signing := enc.EncodeToString(hb) + "." + enc.EncodeToString(pb)
	sig := c.signer.Sign([]byte(signing))
	return signing + "." + enc.EncodeToString(sig), nil
}

// Verify returns the embedded claims, or ErrInvalidToken when the
// token is malformed, signed with the wrong key, or expired. It never
// returns a partially-decoded claim set alongside an error.
func (c *Codec) Verify(tok string) (Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	hb, err := enc.DecodeString(parts[0])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var h header
	if err := json.Unmarshal(hb, &h); err != nil || h.Alg != c.signer.Alg() {
		return Claims{}, ErrInvalidToken
	}

	sig, err := enc.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	if !c.signer.Verify([]byte(parts[0]+"."+parts[1]), sig) {
		return Claims{}, ErrInvalidToken
	}

	pb, err := enc.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(pb, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.ExpiresAt != 0 && c.now().Unix() > claims.ExpiresAt {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
