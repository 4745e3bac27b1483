package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Wallet-style identifiers are lowercase alphanumerics.
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomAccountID returns a wallet-style account identifier under the given
// role namespace, e.g. "customer.k3x9pq2f". Generated ids always pass the
// ledger's account validation.
func RandomAccountID(role string) string {
	return role + "." + randomSuffix(8)
}

// RandomOrderID returns a client-generated order identifier of the shape the
// ledger accepts.
func RandomOrderID() string {
	return "order-" + randomSuffix(8)
}

func randomSuffix(length int) string {
	var b strings.Builder
	b.Grow(length)
	rngMu.Lock()
	defer rngMu.Unlock()
	for i := 0; i < length; i++ {
		b.WriteByte(idAlphabet[rng.Intn(len(idAlphabet))])
	}
	return b.String()
}
