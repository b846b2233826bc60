package notification

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

const defaultDeliveryTimeout = 5 * time.Second

// Dispatcher delivers committed request events. Live subscribers get the
// event synchronously through the publisher; every notifier then receives one
// notification per recipient in the background. Failures are logged and
// counted, never returned to the operation that produced the event.
type Dispatcher struct {
	notifiers    []messaging.Notifier
	publisher    messaging.EventPublisher
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
	timeout      time.Duration

	mu       sync.Mutex
	idle     *sync.Cond
	closed   bool
	inflight int
}

// NewDispatcher creates a dispatcher. publisher may be nil.
func NewDispatcher(
	notifiers []messaging.Notifier,
	publisher messaging.EventPublisher,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	timeout time.Duration,
) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	d := &Dispatcher{
		notifiers:    notifiers,
		publisher:    publisher,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		timeout:      timeout,
	}
	d.idle = sync.NewCond(&d.mu)
	return d
}

var _ usecase.NotificationDispatcher = (*Dispatcher)(nil)

// Dispatch never blocks on delivery
func (d *Dispatcher) Dispatch(event entity.RequestEvent) {
	if d.publisher != nil {
		d.publisher.Publish(event)
	}

	notifications, err := entity.NotificationsFor(event, d.ids.NewID)
	if err != nil {
		d.logger.Error("Failed to render notifications", map[string]any{
			"event":     event.Type,
			"requestId": event.Request.ID,
			"error":     err.Error(),
		})
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("Dispatcher closed, dropping notifications", map[string]any{
			"event":     event.Type,
			"requestId": event.Request.ID,
		})
		return
	}
	d.inflight++
	d.mu.Unlock()

	go func() {
		defer d.finish()

		ctx, cancel := d.timeProvider.WithTimeout(context.Background(), coreport.Duration(d.timeout))
		defer cancel()

		for _, n := range notifications {
			d.deliver(ctx, n)
		}
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, n *entity.Notification) {
	for _, notifier := range d.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			d.metrics.NotificationFailed(notifier.Name())
			d.logger.Warn("Notification delivery failed", map[string]any{
				"channel":        notifier.Name(),
				"notificationId": n.ID,
				"userId":         n.UserID,
				"requestId":      n.RequestID,
				"error":          err.Error(),
			})
			continue
		}
		d.logger.Debug("Notification delivered", map[string]any{
			"channel":        notifier.Name(),
			"notificationId": n.ID,
			"userId":         n.UserID,
		})
	}
}

func (d *Dispatcher) finish() {
	d.mu.Lock()
	d.inflight--
	if d.inflight == 0 {
		d.idle.Broadcast()
	}
	d.mu.Unlock()
}

// Wait blocks until no delivery is in flight. Dispatch may keep running
// concurrently; deliveries it starts before Wait observes zero are waited for.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	for d.inflight > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()
}

// Shutdown stops accepting new deliveries and drains the in-flight ones
func (d *Dispatcher) Shutdown() {
	d.logger.Info("Shutting down notification dispatcher", nil)

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.Wait()
	d.logger.Info("Notification dispatcher shut down successfully", nil)
}
