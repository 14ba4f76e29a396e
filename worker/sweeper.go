package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"mailsift/session"
)

// Sweeper periodically removes expired sessions from the store. The store
// also sweeps lazily on every create, so this only keeps an idle server from
// accumulating garbage between sign-ins.
type Sweeper struct {
	Store    session.Store
	Interval time.Duration
	Logger   *logrus.Entry
}

func NewSweeper(store session.Store, interval time.Duration, logger *logrus.Entry) *Sweeper {
	return &Sweeper{
		Store:    store,
		Interval: interval,
		Logger:   logger,
	}
}

func (sw *Sweeper) Start(ctx context.Context) {
	sw.Logger.Info("Session sweeper started")

	ticker := time.NewTicker(sw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sw.Logger.Info("Session sweeper shutting down...")
			return
		case <-ticker.C:
			sw.sweep(ctx)
		}
	}
}

func (sw *Sweeper) sweep(ctx context.Context) {
	if removed := sw.Store.Sweep(ctx); removed > 0 {
		sw.Logger.WithField("removed", removed).Info("Swept expired sessions")
	}
}
