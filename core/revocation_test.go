package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRevocationStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisRevocationStore(client)
	ctx := context.Background()

	if err := store.Revoke(ctx, "token-a", time.Hour); err != nil {
		t.Fatalf("revoke error: %v", err)
	}

	revoked, err := store.IsRevoked(ctx, "token-a")
	if err != nil {
		t.Fatalf("is-revoked error: %v", err)
	}
	if !revoked {
		t.Fatalf("token-a should be revoked")
	}

	revoked, err = store.IsRevoked(ctx, "token-b")
	if err != nil {
		t.Fatalf("is-revoked error: %v", err)
	}
	if revoked {
		t.Fatalf("token-b was never revoked")
	}

	// Entries expire together with the token they denylist.
	mr.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "token-a")
	if err != nil {
		t.Fatalf("is-revoked error: %v", err)
	}
	if revoked {
		t.Fatalf("denylist entry should have expired")
	}
}
