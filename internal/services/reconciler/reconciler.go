// Package reconciler sweeps accounts stuck in pending with no completed
// payment and cancels them.
package reconciler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
)

// Repository is the sweep operation the worker needs.
type Repository interface {
	CancelStalePendingAccounts(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service runs the periodic pending-account sweep.
type Service struct {
	log  *slog.Logger
	repo Repository
	cfg  config.Reconciler
}

func New(log *slog.Logger, repo Repository, cfg config.Reconciler) *Service {
	return &Service{log: log, repo: repo, cfg: cfg}
}

// Run sweeps immediately, then on every tick until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.cfg.PendingMaxAge)
	cancelled, err := s.repo.CancelStalePendingAccounts(ctx, cutoff)
	if err != nil {
		s.log.Error("pending-account sweep failed", sl.Err(err))
		return
	}
	if cancelled > 0 {
		s.log.Info("cancelled stale pending accounts", slog.Int64("count", cancelled))
	}
}
