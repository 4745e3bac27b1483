package di

import (
	"go.uber.org/fx"

	"laundromat/internal/adapter/events"
	"laundromat/internal/adapter/payment"
	"laundromat/internal/app"
	"laundromat/internal/config"
	"laundromat/internal/logger"
	"laundromat/internal/pkg/auth"
	"laundromat/internal/server/http/handlers"
	"laundromat/internal/server/http/router"
	"laundromat/internal/storage/postgres"
	"laundromat/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(f *app.LaundryFacade) handlers.LaundryFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
