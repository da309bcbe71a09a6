package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const defaultPublishTimeout = 2 * time.Second

// Notifier отправляет события бронирований по принципу best effort:
// ошибка брокера логируется и не влияет на результат операции.
// Notifier без публикатора ничего не отправляет.
type Notifier struct {
	publisher JSONPublisher
	logger    Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewNotifier создает Notifier. publisher может быть nil (события отключены)
func NewNotifier(publisher JSONPublisher, timeout time.Duration, logger Logger) *Notifier {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Notifier{
		publisher: publisher,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (n *Notifier) BookingCreated(ctx context.Context, booking *domain.Booking) {
	if !n.enabled() {
		return
	}
	n.publish(ctx, newBookingEvent(KeyBookingCreated, booking, n.now()))
}

func (n *Notifier) BookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) {
	if !n.enabled() {
		return
	}
	event := newBookingEvent(KeyBookingStatusChanged, booking, n.now())
	event.PreviousStatus = string(previous)
	n.publish(ctx, event)
}

func (n *Notifier) BookingUpdated(ctx context.Context, booking *domain.Booking) {
	if !n.enabled() {
		return
	}
	n.publish(ctx, newBookingEvent(KeyBookingUpdated, booking, n.now()))
}

func (n *Notifier) BookingDeleted(ctx context.Context, booking *domain.Booking) {
	if !n.enabled() {
		return
	}
	n.publish(ctx, newBookingEvent(KeyBookingDeleted, booking, n.now()))
}

func (n *Notifier) enabled() bool {
	return n != nil && n.publisher != nil
}

func (n *Notifier) publish(ctx context.Context, event BookingEvent) {
	// Отмена HTTP запроса не должна обрывать публикацию уже зафиксированного события
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.publisher.PublishJSON(pubCtx, event.Type, event); err != nil {
		n.logger.Warn("Events: failed to publish %s for booking id=%s: %v", event.Type, event.BookingID, err)
		return
	}

	n.logger.Info("Events: published %s for booking id=%s", event.Type, event.BookingID)
}
