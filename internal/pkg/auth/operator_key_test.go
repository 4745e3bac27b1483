package auth

import (
	"errors"
	"testing"
)

type verifierStub struct {
	err error
}

func (v verifierStub) Compare(string, string) error { return v.err }

func TestHashKeyRoundTrip(t *testing.T) {
	hash, err := HashKey("master-key")
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if err := (BcryptVerifier{}).Compare(hash, "master-key"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := (BcryptVerifier{}).Compare(hash, "guessed"); err == nil {
		t.Fatal("expected compare error for wrong key")
	}
}

func TestOperatorGuardOwner(t *testing.T) {
	guard := NewOperatorGuard("owner.laundry", "hash", verifierStub{})
	if guard.Owner() != "owner.laundry" {
		t.Fatalf("unexpected owner: %q", guard.Owner())
	}
}

func TestOperatorGuardVerifyKey(t *testing.T) {
	guard := NewOperatorGuard("owner.laundry", "stored-hash", verifierStub{})
	if err := guard.VerifyKey("master-key"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	guard = NewOperatorGuard("owner.laundry", "stored-hash", verifierStub{err: errors.New("mismatch")})
	if err := guard.VerifyKey("guessed"); !errors.Is(err, ErrInvalidOperatorKey) {
		t.Fatalf("expected ErrInvalidOperatorKey, got %v", err)
	}

	if err := guard.VerifyKey(""); !errors.Is(err, ErrInvalidOperatorKey) {
		t.Fatalf("expected ErrInvalidOperatorKey for empty key, got %v", err)
	}

	guard = NewOperatorGuard("owner.laundry", "", verifierStub{})
	if err := guard.VerifyKey("master-key"); !errors.Is(err, ErrInvalidOperatorKey) {
		t.Fatalf("expected ErrInvalidOperatorKey for unset hash, got %v", err)
	}
}
