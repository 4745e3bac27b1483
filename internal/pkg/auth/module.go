package auth

import (
	"laundromat/internal/config"

	"go.uber.org/fx"
)

// Module provides identity primitives via fx.
var Module = fx.Options(
	fx.Provide(newTokenStrategy),
	fx.Provide(newOperatorGuard),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.TokenSecret, Options{})
}

func newOperatorGuard(p strategyParams) *OperatorGuard {
	return NewOperatorGuard(p.Config.OwnerAccount, p.Config.OperatorKeyHash, BcryptVerifier{})
}
