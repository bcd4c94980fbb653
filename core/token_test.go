package core

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestIssueAndValidate(t *testing.T) {
	ts := NewTokenService(testConfig(), nil)

	token, err := ts.Issue("alice", RoleUser)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	identity, ok := ts.Validate(context.Background(), token)
	if !ok {
		t.Fatalf("expected token to validate")
	}
	if identity.Username != "alice" || identity.Role != RoleUser {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	ts := NewTokenService(testConfig(), nil)
	token, err := ts.Issue("alice", RoleUser)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	for _, bad := range []string{"", "not-a-token", token + "x", token[:len(token)-4]} {
		if _, ok := ts.Validate(context.Background(), bad); ok {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	ts := NewTokenService(testConfig(), nil)
	token, err := ts.Issue("alice", RoleUser)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	otherCfg := testConfig()
	otherCfg.JWTSecret = "a-different-secret"
	other := NewTokenService(otherCfg, nil)
	if _, ok := other.Validate(context.Background(), token); ok {
		t.Fatalf("token signed with another key must not validate")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.TokenTTLMinutes = -1
	ts := NewTokenService(cfg, nil)

	token, err := ts.Issue("alice", RoleUser)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, ok := ts.Validate(context.Background(), token); ok {
		t.Fatalf("expired token must not validate")
	}
}

func TestRevokedTokenIsInvalid(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisRevocationStore(client)
	ts := NewTokenService(testConfig(), store)
	ctx := context.Background()

	token, err := ts.Issue("alice", RoleUser)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, ok := ts.Validate(ctx, token); !ok {
		t.Fatalf("fresh token should validate")
	}

	if err := ts.Revoke(ctx, token); err != nil {
		t.Fatalf("revoke error: %v", err)
	}
	if _, ok := ts.Validate(ctx, token); ok {
		t.Fatalf("revoked token must not validate")
	}
}

func TestRevokeRejectsGarbage(t *testing.T) {
	ts := NewTokenService(testConfig(), nil)
	if err := ts.Revoke(context.Background(), "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
