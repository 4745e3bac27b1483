package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidOperatorKey = errors.New("invalid operator key")

// KeyVerifier checks a presented secret against a stored hash.
type KeyVerifier interface {
	Compare(hash string, key string) error
}

// BcryptVerifier verifies keys against bcrypt hashes.
type BcryptVerifier struct{}

// Compare checks key against stored hash.
func (BcryptVerifier) Compare(hash string, key string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
}

// HashKey produces a bcrypt hash for an operator key, used when provisioning
// the deployment configuration.
func HashKey(key string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// OperatorGuard gates the privileged admin-registration operation: the caller
// must be the ledger's owner account and present the operator key matching
// the configured hash.
type OperatorGuard struct {
	owner    string
	keyHash  string
	verifier KeyVerifier
}

// NewOperatorGuard constructs OperatorGuard.
func NewOperatorGuard(owner, keyHash string, verifier KeyVerifier) *OperatorGuard {
	return &OperatorGuard{owner: owner, keyHash: keyHash, verifier: verifier}
}

// Owner returns the ledger's owning account identifier.
func (g *OperatorGuard) Owner() string {
	return g.owner
}

// VerifyKey checks the presented operator key.
func (g *OperatorGuard) VerifyKey(key string) error {
	if g.keyHash == "" || key == "" {
		return ErrInvalidOperatorKey
	}
	if err := g.verifier.Compare(g.keyHash, key); err != nil {
		return ErrInvalidOperatorKey
	}
	return nil
}
