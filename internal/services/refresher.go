package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Refresher keeps the saved copies warm by refreshing on a fixed interval.
type Refresher struct {
	showcase *Showcase
	interval time.Duration
	logger   *log.Logger
}

// NewRefresher creates a Refresher. A non-positive interval disables it.
func NewRefresher(s *Showcase, interval time.Duration, logger *log.Logger) *Refresher {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Refresher{showcase: s, interval: interval, logger: logger}
}

// Run refreshes once immediately and then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.showcase.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.logger.WithError(err).Warn("background refresh failed")
	}
}
