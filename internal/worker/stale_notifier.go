package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"laundromat/internal/domain/model"
)

// LaundryFacade exposes the subset of application functionality required by the worker.
type LaundryFacade interface {
	StaleOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
	NotifyStale(ctx context.Context, order model.Order)
}

// StaleNotifier periodically sweeps for orders stuck in a non-terminal status
// past the configured age and publishes reminder events for operators.
type StaleNotifier struct {
	facade       LaundryFacade
	staleAge     time.Duration
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStaleNotifier constructs the stale order worker pool.
func NewStaleNotifier(facade LaundryFacade, staleAge, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *StaleNotifier {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &StaleNotifier{
		facade:       facade,
		staleAge:     staleAge,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (n *StaleNotifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel

	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.worker(runCtx)
	}

	n.wg.Add(1)
	go n.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (n *StaleNotifier) Stop() {
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.mu.Unlock()

	n.wg.Wait()
}

func (n *StaleNotifier) dispatch(ctx context.Context) {
	defer n.wg.Done()
	defer close(n.jobs)
	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.fetchAndDispatch(ctx)
		}
	}
}

func (n *StaleNotifier) fetchAndDispatch(ctx context.Context) {
	cutoff := time.Now().Add(-n.staleAge)
	orders, err := n.facade.StaleOrders(ctx, cutoff, n.batchSize)
	if err != nil {
		n.logger.Error("fetch stale orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case n.jobs <- order:
		}
	}
}

func (n *StaleNotifier) worker(ctx context.Context) {
	defer n.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-n.jobs:
			if !ok {
				return
			}
			n.logger.Warn("order pending past stale age",
				slog.String("order_id", order.ID),
				slog.String("customer_id", order.CustomerID),
				slog.String("status", string(order.Status)),
				slog.Time("pickup_at", order.PickupAt),
			)
			n.facade.NotifyStale(ctx, order)
		}
	}
}
