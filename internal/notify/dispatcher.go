package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/internal/integrations/whatsgw"
)

const sendTimeout = 15 * time.Second

// Sender delivers one message. Satisfied by the whatsgw client.
type Sender interface {
	Send(ctx context.Context, msg whatsgw.Message) error
}

// Metrics counts dispatch outcomes. Satisfied by pkg/metrics.Metrics.
type Metrics interface {
	IncNotification(result string)
}

// Logger is the logging interface consumed by the dispatcher.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher sends booking confirmations fire-and-forget: a send runs in
// its own goroutine with its own timeout, and a failure is logged and
// counted but never reaches the booking flow.
type Dispatcher struct {
	sender  Sender
	metrics Metrics
	log     Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher. A nil sender disables dispatching
// entirely (notifications not configured).
func NewDispatcher(sender Sender, metrics Metrics, log Logger) *Dispatcher {
	return &Dispatcher{sender: sender, metrics: metrics, log: log}
}

// BookingConfirmed notifies the customer that the appointment was created.
// Returns immediately.
func (d *Dispatcher) BookingConfirmed(tenant *domain.Tenant, a *domain.Appointment) {
	d.dispatch(a.CustomerPhone, bookingConfirmedText(tenant, a))
}

// BookingCancelled notifies the customer about a cancellation.
func (d *Dispatcher) BookingCancelled(tenant *domain.Tenant, a *domain.Appointment) {
	d.dispatch(a.CustomerPhone, bookingCancelledText(tenant, a))
}

func (d *Dispatcher) dispatch(phone, text string) {
	if d.sender == nil || phone == "" {
		if d.metrics != nil {
			d.metrics.IncNotification("skipped")
		}
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// Detached from the request context on purpose: the booking has
		// already committed and the HTTP response may be long gone.
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		err := d.sender.Send(ctx, whatsgw.Message{Phone: phone, Text: text})
		if err != nil {
			d.log.Warn("notify: send to %s failed: %v", phone, err)
			if d.metrics != nil {
				d.metrics.IncNotification("failed")
			}
			return
		}
		if d.metrics != nil {
			d.metrics.IncNotification("sent")
		}
	}()
}

// Drain waits for in-flight sends, called on graceful shutdown.
func (d *Dispatcher) Drain() {
	d.wg.Wait()
}

func bookingConfirmedText(tenant *domain.Tenant, a *domain.Appointment) string {
	return fmt.Sprintf(
		"Olá %s! Seu agendamento de %s no %s foi recebido para %s às %s. Referência: %s",
		a.CustomerName,
		a.ServiceName,
		tenant.Name,
		a.Date.Format("02/01/2006"),
		a.StartTime.String(),
		a.PublicRef,
	)
}

func bookingCancelledText(tenant *domain.Tenant, a *domain.Appointment) string {
	return fmt.Sprintf(
		"Olá %s, seu agendamento de %s no %s em %s às %s foi cancelado.",
		a.CustomerName,
		a.ServiceName,
		tenant.Name,
		a.Date.Format("02/01/2006"),
		a.StartTime.String(),
	)
}
