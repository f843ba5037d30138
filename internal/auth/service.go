package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("email and password required")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore owns credential rows. Create must be conflict-safe on the
// unique email so concurrent registration (and re-seeding) cannot
// produce duplicates.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, email, passwordHash, role string) (User, error)
}

type Service struct {
	Store UserStore
	Codec *token.Codec
	TTL   time.Duration
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, email, password string) (PublicUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return PublicUser{}, ErrMissingFields
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return PublicUser{}, err
	}
	u, err := s.Store.Create(ctx, email, string(hash), token.RoleUser)
	if err != nil {
		return PublicUser{}, err
	}
	return u.Public(), nil
}

// Login checks credentials and issues a fresh bearer token. The token
// embeds email and role; every later authorization decision reads the
// role from the verified claims, not from the database.
func (s *Service) Login(ctx context.Context, email, password string) (string, PublicUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", PublicUser{}, ErrMissingFields
	}
	u, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", PublicUser{}, ErrInvalidCredentials
		}
		return "", PublicUser{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", PublicUser{}, ErrInvalidCredentials
	}
	tok, err := s.Codec.Issue(u.Email, u.Role, s.TTL)
	if err != nil {
		return "", PublicUser{}, err
	}
	return tok, u.Public(), nil
}

func (s *Service) Verify(tok string) (token.Claims, error) {
	return s.Codec.Verify(tok)
}

// SeedAdmin guarantees the administrative identity exists. Re-running
// it against an existing admin is a no-op: the row is neither
// duplicated nor has its password hash reset.
func (s *Service) SeedAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if _, err := s.Store.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.Store.Create(ctx, email, string(hash), token.RoleAdmin); err != nil {
		// lost a race against another instance seeding the same admin
		if errors.Is(err, ErrEmailTaken) {
			return nil
		}
		return err
	}
	slog.Info("admin identity seeded", "email", email)
	return nil
}
