package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/token"
	"github.com/stretchr/testify/require"
)

// memUsers is an in-memory UserStore with the same conflict semantics
// as the postgres repo.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]User
}

func newMemUsers() *memUsers {
	return &memUsers{byMail: make(map[string]User)}
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byMail[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) Create(_ context.Context, email, hash, role string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byMail[email]; ok {
		return User{}, ErrEmailTaken
	}
	m.nextID++
	u := User{ID: m.nextID, Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now()}
	m.byMail[email] = u
	return u, nil
}

func newTestService() (*Service, *memUsers) {
	store := newMemUsers()
	svc := &Service{
		Store: store,
		Codec: token.NewCodec(token.NewHS256Signer([]byte("test-secret"))),
		TTL:   7 * 24 * time.Hour,
	}
	return svc, store
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Bob@Example.COM ", "pw123")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", u.Email)
	require.Equal(t, token.RoleUser, u.Role)

	_, err = svc.Register(ctx, "bob@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, "", "pw")
	require.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.Register(ctx, "x@y.z", "")
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestLoginAndVerify(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@example.com", "pw123")
	require.NoError(t, err)

	tok, u, err := svc.Login(ctx, "bob@example.com", "pw123")
	require.NoError(t, err)
	require.Equal(t, token.RoleUser, u.Role)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", claims.Email)
	require.Equal(t, token.RoleUser, claims.Role)
	require.Equal(t, int64(7*24*3600), claims.ExpiresAt-claims.IssuedAt)

	_, _, err = svc.Login(ctx, "bob@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "pw123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeedAdminIdempotent(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "admin@admin.com", "AdminPass123"))
	first, err := store.FindByEmail(ctx, "admin@admin.com")
	require.NoError(t, err)
	require.Equal(t, token.RoleAdmin, first.Role)

	// re-seed, including with a different password, must not touch the row
	require.NoError(t, svc.SeedAdmin(ctx, "admin@admin.com", "SomethingElse"))
	again, err := store.FindByEmail(ctx, "admin@admin.com")
	require.NoError(t, err)
	require.Equal(t, first.PasswordHash, again.PasswordHash)
	require.Equal(t, first.ID, again.ID)
	require.Len(t, store.byMail, 1)

	_, _, err = svc.Login(ctx, "admin@admin.com", "AdminPass123")
	require.NoError(t, err)
}
