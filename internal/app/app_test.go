package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"laundromat/internal/config"
	"laundromat/internal/jobs"
	testhelpers "laundromat/internal/test"
	"laundromat/internal/worker"
)

func newTestStaleNotifier() *worker.StaleNotifier {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewStaleNotifier(&testhelpers.StaleFacadeStub{}, time.Hour, 10*time.Millisecond, 1, 1, logger)
}

func newTestEscrowReporter(t *testing.T) *jobs.EscrowReporter {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	reporter, err := jobs.NewEscrowReporter(&testhelpers.LedgerFacadeStub{}, "@daily", logger)
	if err != nil {
		t.Fatalf("failed to build reporter: %v", err)
	}
	return reporter
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewStaleNotifierUsesConfig(t *testing.T) {
	notifier := newStaleNotifier(workerParams{
		Facade: &LaundryFacade{},
		Config: &config.Config{StaleOrderAge: time.Hour, StalePollInterval: 15 * time.Second, StaleOrdersBatch: 3, WorkerPoolSize: 4},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if notifier == nil {
		t.Fatal("expected stale notifier instance")
	}
}

func TestNewEscrowReporter(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	reporter, err := newEscrowReporter(workerParams{
		Facade: &LaundryFacade{},
		Config: &config.Config{EscrowReportSpec: "0 6 * * *"},
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reporter == nil {
		t.Fatal("expected reporter instance")
	}

	if _, err := newEscrowReporter(workerParams{
		Facade: &LaundryFacade{},
		Config: &config.Config{EscrowReportSpec: "not a schedule"},
		Logger: logger,
	}); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     newTestStaleNotifier(),
		Reporter:   newTestEscrowReporter(t),
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := recorder.Start(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Stop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     newTestStaleNotifier(),
		Reporter:   newTestEscrowReporter(t),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = recorder.Stop(context.Background())
}
