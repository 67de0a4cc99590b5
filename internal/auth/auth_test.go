package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	user := &models.User{ID: 42, Role: "P"}

	tok, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok.Value == "" || tok.ID == "" {
		t.Fatalf("empty token: %+v", tok)
	}

	claims, err := issuer.Parse(tok.Value)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "P" || claims.ID != tok.ID {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", time.Minute).WithClock(func() time.Time { return issued })

	tok, err := issuer.Issue(&models.User{ID: 1, Role: "A"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer.WithClock(func() time.Time { return issued.Add(2 * time.Minute) })
	if _, err := issuer.Parse(tok.Value); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("secret", time.Hour).Issue(&models.User{ID: 1, Role: "A"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenIssuer("other", time.Hour).Parse(tok.Value); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenIssuer("secret", time.Hour).Parse(raw); err == nil {
		t.Fatalf("alg none must be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := NewTokenIssuer("secret", time.Hour).Parse("not-a-token"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw1" {
		t.Fatalf("hash equals plaintext")
	}
	if !h.Verify(hash, "pw1") {
		t.Fatalf("verify failed for correct password")
	}
	if h.Verify(hash, "pw2") {
		t.Fatalf("verify passed for wrong password")
	}
}

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	s := NewMemoryRevocationStore()
	s.now = func() time.Time { return now }

	if err := s.Revoke(ctx, "a", now.Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, _ := s.IsRevoked(ctx, "a")
	if !revoked {
		t.Fatalf("expected a revoked")
	}
	if revoked, _ := s.IsRevoked(ctx, "b"); revoked {
		t.Fatalf("b was never revoked")
	}

	now = now.Add(2 * time.Minute)
	if revoked, _ := s.IsRevoked(ctx, "a"); revoked {
		t.Fatalf("entry must lapse after token expiry")
	}

	// a próxima revogação limpa entradas vencidas
	_ = s.Revoke(ctx, "c", now.Add(time.Minute))
	if _, ok := s.entries["a"]; ok {
		t.Fatalf("expired entry not purged")
	}
}
