package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"laundromat/internal/domain/model"
	"laundromat/internal/domain/repository"
)

// LedgerFacade exposes the aggregation the report needs.
type LedgerFacade interface {
	EscrowTotals(ctx context.Context) ([]repository.EscrowTotal, error)
}

// EscrowReporter logs a scheduled reconciliation report: how much value the
// treasury should currently hold, broken down by order status. Operators
// compare the held figure against the actual treasury balance.
type EscrowReporter struct {
	cron   *cron.Cron
	facade LedgerFacade
	logger *slog.Logger
}

// NewEscrowReporter schedules the report with the given cron spec.
func NewEscrowReporter(facade LedgerFacade, spec string, logger *slog.Logger) (*EscrowReporter, error) {
	r := &EscrowReporter{
		cron:   cron.New(),
		facade: facade,
		logger: logger,
	}
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return nil, err
	}
	return r, nil
}

// Start begins the schedule.
func (r *EscrowReporter) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running report to finish.
func (r *EscrowReporter) Stop() {
	<-r.cron.Stop().Done()
}

func (r *EscrowReporter) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	totals, err := r.facade.EscrowTotals(ctx)
	if err != nil {
		r.logger.Error("escrow report failed", slog.String("error", err.Error()))
		return
	}

	var held int64
	for _, t := range totals {
		if t.Status == model.OrderStatusConfirmed || t.Status == model.OrderStatusInProgress {
			held += t.Sum
		}
		r.logger.Info("escrow report",
			slog.String("status", string(t.Status)),
			slog.Int64("orders", t.Orders),
			slog.Int64("sum", t.Sum),
		)
	}
	r.logger.Info("escrow held total", slog.Int64("held", held))
}
