package request

import (
	"context"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

const defaultSweepBatch = 100

// ExpirySweeper periodically ignores pending requests that no provider
// answered within the policy TTL, refunding their escrow
type ExpirySweeper struct {
	service      *Service
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	expireAfter  time.Duration
	interval     time.Duration
	batch        int

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewExpirySweeper creates a sweeper for the service's requests
func NewExpirySweeper(service *Service, policy Policy) *ExpirySweeper {
	batch := policy.SweepBatch
	if batch <= 0 {
		batch = defaultSweepBatch
	}
	interval := policy.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpirySweeper{
		service:      service,
		timeProvider: service.timeProvider,
		logger:       service.logger,
		expireAfter:  policy.ExpireAfter,
		interval:     interval,
		batch:        batch,
		stopChan:     make(chan struct{}),
	}
}

// Enabled reports whether the policy asks for expiry at all
func (e *ExpirySweeper) Enabled() bool {
	return e.expireAfter > 0
}

// Start runs the sweep loop until Stop is called or ctx is done
func (e *ExpirySweeper) Start(ctx context.Context) {
	if !e.Enabled() {
		e.logger.Info("Request expiry disabled", nil)
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		e.logger.Info("Request expiry sweeper started", map[string]any{
			"expireAfter": e.expireAfter.String(),
			"interval":    e.interval.String(),
		})

		for {
			select {
			case <-e.stopChan:
				e.logger.Info("Request expiry sweeper stopped", nil)
				return
			case <-ctx.Done():
				e.logger.Info("Request expiry sweeper stopped", nil)
				return
			case <-ticker.C:
				if _, err := e.SweepOnce(ctx); err != nil {
					e.logger.Error("Request expiry sweep failed", map[string]any{
						"error": err.Error(),
					})
				}
			}
		}
	}()
}

// Stop ends the loop and waits for an in-flight sweep
func (e *ExpirySweeper) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopChan)
	})
	e.wg.Wait()
}

// SweepOnce expires one batch of stale pending requests and returns how many
// it closed. A request accepted in the meantime is skipped.
func (e *ExpirySweeper) SweepOnce(ctx context.Context) (int, error) {
	cutoff := e.timeProvider.Now().Add(-e.expireAfter)

	stale, err := e.service.uow.GetRequestRepository(ctx).ListPendingCreatedBefore(ctx, cutoff, e.batch)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, req := range stale {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		if _, err := e.service.Expire(ctx, req.ID); err != nil {
			if errs.IsInvalidTransitionError(err) {
				e.logger.Debug("Skipped request that left pending", map[string]any{
					"requestId": req.ID,
				})
				continue
			}
			e.logger.Warn("Failed to expire request", map[string]any{
				"requestId": req.ID,
				"error":     err.Error(),
			})
			continue
		}
		expired++
	}

	if expired > 0 {
		e.logger.Info("Expired stale requests", map[string]any{
			"count":  expired,
			"cutoff": cutoff,
		})
	}
	return expired, nil
}
