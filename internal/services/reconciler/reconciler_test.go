package reconciler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
)

type countingRepo struct {
	sweeps     atomic.Int64
	lastCutoff atomic.Value
}

func (r *countingRepo) CancelStalePendingAccounts(_ context.Context, cutoff time.Time) (int64, error) {
	r.sweeps.Add(1)
	r.lastCutoff.Store(cutoff)
	return 1, nil
}

func TestRun_SweepsImmediatelyAndOnTick(t *testing.T) {
	repo := &countingRepo{}
	svc := New(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, config.Reconciler{
		SweepInterval: 20 * time.Millisecond,
		PendingMaxAge: 48 * time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()
	svc.Run(ctx)

	// One immediate sweep plus at least one tick.
	assert.GreaterOrEqual(t, repo.sweeps.Load(), int64(2))

	cutoff := repo.lastCutoff.Load().(time.Time)
	assert.WithinDuration(t, time.Now().UTC().Add(-48*time.Hour), cutoff, time.Minute)
}
