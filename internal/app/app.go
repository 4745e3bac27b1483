package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"laundromat/internal/config"
	"laundromat/internal/jobs"
	"laundromat/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewLaundryFacade,
		newHTTPServer,
		newStaleNotifier,
		newEscrowReporter,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *LaundryFacade
	Config *config.Config
	Logger *slog.Logger
}

func newStaleNotifier(p workerParams) *worker.StaleNotifier {
	return worker.NewStaleNotifier(
		p.Facade,
		p.Config.StaleOrderAge,
		p.Config.StalePollInterval,
		p.Config.StaleOrdersBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

func newEscrowReporter(p workerParams) (*jobs.EscrowReporter, error) {
	return jobs.NewEscrowReporter(p.Facade, p.Config.EscrowReportSpec, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.StaleNotifier
	Reporter   *jobs.EscrowReporter
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting laundromat", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			p.Reporter.Start()
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Reporter.Stop()
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("laundromat stopped")
			return nil
		},
	})
}
