// Package scheduler runs the periodic maintenance jobs of the API process.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pickme-backend/pkg/logger"
)

// Purger removes expired verification codes and reports how many were removed.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler wraps robfig/cron and owns the verification-code purge.
type Scheduler struct {
	cron    *cron.Cron
	purger  Purger
	spec    string // cron spec, e.g. "@every 30m"
	timeout time.Duration
}

func New(purger Purger, spec string) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		purger:  purger,
		spec:    spec,
		timeout: time.Minute,
	}
}

// Start registers the purge job and starts the cron loop. The job stops running once ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.purge(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}
	s.cron.Start()
	logger.Log.Info("Scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("Scheduler stopped")
}

func (s *Scheduler) purge(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		logger.Log.Error("Verification code purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Log.Info("Purged expired verification codes", zap.Int64("count", n))
	}
}
