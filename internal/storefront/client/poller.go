package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

const DefaultPollInterval = 30 * time.Second

// StatusFetcher returns the current store status.
type StatusFetcher interface {
	StoreStatus(ctx context.Context) (*domain.StoreStatus, error)
}

// StatusPoller refreshes the store status in the background and serves the
// last known value. A failed fetch keeps the previous value.
type StatusPoller struct {
	fetcher  StatusFetcher
	interval time.Duration
	logger   zerolog.Logger

	mu       sync.RWMutex
	current  *domain.StoreStatus
	onChange func(domain.StoreStatus)
}

func NewStatusPoller(fetcher StatusFetcher, interval time.Duration, logger zerolog.Logger) *StatusPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StatusPoller{fetcher: fetcher, interval: interval, logger: logger}
}

// OnChange registers fn to be called whenever the polled status differs from
// the previous one, including the first successful fetch. Call before Run.
func (p *StatusPoller) OnChange(fn func(domain.StoreStatus)) {
	p.onChange = fn
}

// Run fetches once immediately and then on every tick until ctx is done.
func (p *StatusPoller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// Current returns the last fetched status and whether one is known yet.
func (p *StatusPoller) Current() (domain.StoreStatus, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return domain.StoreStatus{}, false
	}
	return *p.current, true
}

func (p *StatusPoller) refresh(ctx context.Context) {
	status, err := p.fetcher.StoreStatus(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn().Err(err).Msg("store status refresh failed")
		}
		return
	}

	p.mu.Lock()
	changed := p.current == nil || p.current.Status != status.Status
	p.current = status
	p.mu.Unlock()

	if changed && p.onChange != nil {
		p.onChange(*status)
	}
}
