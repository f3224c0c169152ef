// internal/notifications/poller.go
package notifications

import (
	"context"
	"time"

	"workersglobe/internal/common/logger"
)

// Poller periodically refreshes the notification feed while a session is
// active. The active gate keeps it from hammering the backend with
// unauthenticated requests after logout.
type Poller struct {
	service  *Service
	logger   logger.Logger
	interval time.Duration
	active   func() bool
}

func NewPoller(service *Service, log logger.Logger, interval time.Duration, active func() bool) *Poller {
	return &Poller{
		service:  service,
		logger:   log.WithFields(map[string]interface{}{"component": "notification-poller"}),
		interval: interval,
		active:   active,
	}
}

// Run polls until ctx is cancelled. It refreshes once up front so the feed
// is populated before the first tick.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("notification poller starting", map[string]interface{}{"interval": p.interval.String()})

	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification poller stopping", nil)
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if p.active != nil && !p.active() {
		return
	}
	if err := p.service.Refresh(ctx); err != nil {
		p.logger.Debug("poll refresh failed", map[string]interface{}{"error": err.Error()})
	}
}
