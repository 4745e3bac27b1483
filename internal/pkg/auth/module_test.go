package auth

import (
	"testing"
	"time"

	"laundromat/internal/config"
)

func TestNewTokenStrategy(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{TokenSecret: "top-secret"}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}

func TestNewOperatorGuard(t *testing.T) {
	guard := newOperatorGuard(strategyParams{Config: &config.Config{OwnerAccount: "owner.laundry", OperatorKeyHash: "stored-hash"}})
	if guard.Owner() != "owner.laundry" {
		t.Fatalf("unexpected owner: %q", guard.Owner())
	}
	if guard.keyHash != "stored-hash" {
		t.Fatalf("unexpected key hash: %q", guard.keyHash)
	}
	if _, ok := guard.verifier.(BcryptVerifier); !ok {
		t.Fatalf("expected BcryptVerifier, got %T", guard.verifier)
	}
}
