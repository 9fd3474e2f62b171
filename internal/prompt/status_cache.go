package prompt

import (
	"context"
	"time"

	"dbpd/internal/providers"
	"dbpd/internal/structures"

	"go.uber.org/atomic"
)

// DefaultStatusCache fronts the OS default-browser probe. Reads never
// block: they return the last known value and, when that value has gone
// stale, kick one background refresh. A failed probe retains the previous
// value; an OS outage must not flip a known "is default" to false.
type DefaultStatusCache struct {
	provider providers.StatusProviderInterface
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	ttl      time.Duration

	value       atomic.Bool
	refreshedAt atomic.Time
	refreshing  atomic.Bool
}

func NewDefaultStatusCache(conf *structures.Config, provider providers.StatusProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *DefaultStatusCache {
	return &DefaultStatusCache{
		provider: provider,
		metrics:  metrics,
		logger:   logger,
		ttl:      conf.Status.RefreshInterval,
	}
}

// IsDefaultBrowser returns the cached status immediately. A stale cache
// schedules a single background refresh whose result lands before some
// later call.
func (c *DefaultStatusCache) IsDefaultBrowser() bool {
	if time.Since(c.refreshedAt.Load()) > c.ttl && c.refreshing.CompareAndSwap(false, true) {
		go func() {
			defer c.refreshing.Store(false)
			if err := c.Refresh(context.Background()); err != nil {
				c.logger.Warnf(providers.TypeEngine, "Background status refresh failed, keeping cached value: %v", err)
			}
		}()
	}
	return c.value.Load()
}

// Refresh probes synchronously and replaces the cached value on success.
func (c *DefaultStatusCache) Refresh(ctx context.Context) error {
	start := time.Now()
	isDefault, err := c.provider.IsDefault(ctx)
	if err != nil {
		c.metrics.IncStatusProbeFailures()
		return err
	}

	c.metrics.ObserveStatusProbeDuration(time.Since(start))
	c.value.Store(isDefault)
	c.refreshedAt.Store(time.Now())
	c.metrics.SetDefaultBrowser(isDefault)
	return nil
}
