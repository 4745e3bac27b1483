package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"laundromat/internal/config"
)

// Module exposes the order event publisher to the fx graph.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("order event publishing disabled, no AMQP URL configured")
		return NoopPublisher{}, nil
	}

	publisher, err := Dial(p.Config.AMQPURL, p.Logger)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			publisher.Close()
			return nil
		},
	})

	return publisher, nil
}
