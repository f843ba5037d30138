package token

import (
	"strings"
	"testing"
	"time"
)

func newTestCodec() *Codec {
	return NewCodec(NewHS256Signer([]byte("test-secret-key")))
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec()

	tok, err := c.Issue("alice@example.com", RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Fatalf("token should have 3 segments, got %q", tok)
	}
	if strings.ContainsAny(tok, "=+/") {
		t.Errorf("token must be unpadded base64url, got %q", tok)
	}

	claims, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Email != "alice@example.com" || claims.Role != RoleUser {
		t.Errorf("Verify() = %+v", claims)
	}
	if claims.ExpiresAt != claims.IssuedAt+3600 {
		t.Errorf("exp-iat = %d, want 3600", claims.ExpiresAt-claims.IssuedAt)
	}
}

func TestCodec_Expiry(t *testing.T) {
	now := time.Now()
	c := newTestCodec().WithClock(func() time.Time { return now })

	tok, err := c.Issue("alice@example.com", RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := c.Verify(tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	now = now.Add(time.Hour + time.Second)
	if _, err := c.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestCodec_InvalidTokens(t *testing.T) {
	c := newTestCodec()
	good, err := c.Issue("alice@example.com", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	parts := strings.Split(good, ".")

	otherCodec := NewCodec(NewHS256Signer([]byte("different-secret")))
	foreign, _ := otherCodec.Issue("alice@example.com", RoleAdmin, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", parts[0] + "." + parts[1]},
		{"four segments", good + ".extra"},
		{"wrong secret", foreign},
		{"non-base64 payload", parts[0] + ".!!!." + parts[2]},
		{"non-json payload", parts[0] + ".bm90LWpzb24." + parts[2]},
		{"truncated signature", parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-4]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Verify(tt.token); err == nil {
				t.Errorf("Verify(%q) accepted an invalid token", tt.token)
			}
		})
	}
}

// Flipping any single bit of the payload or signature must invalidate
// the token.
func TestCodec_TamperDetection(t *testing.T) {
	c := newTestCodec()
	good, err := c.Issue("alice@example.com", RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	firstDot := strings.IndexByte(good, '.')
	for i := firstDot + 1; i < len(good); i++ {
		if good[i] == '.' {
			continue
		}
		b := []byte(good)
		if b[i] != 'A' {
			b[i] = 'A'
		} else {
			b[i] = 'B'
		}
		if _, err := c.Verify(string(b)); err == nil {
			t.Fatalf("tampered byte at %d accepted", i)
		}
	}
}
