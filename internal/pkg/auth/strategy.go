package auth

import "time"

// Strategy verifies the wallet gateway's identity tokens. The token only
// carries the account identifier the gateway already authenticated; the
// ledger itself never performs wallet authentication.
type Strategy interface {
	IssueToken(accountID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
