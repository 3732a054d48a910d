package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Sender interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Recorder observes delivery outcomes: sent, failed or dropped.
type Recorder interface {
	NotificationResult(sender, result string)
}

type DispatcherConfig struct {
	QueueSize int
	Workers   int
	Timeout   time.Duration
}

// Dispatcher is a bounded outbound queue. Enqueue never blocks, each send
// gets its own timeout, and failed sends are logged and discarded.
type Dispatcher struct {
	sender   Sender
	log      *slog.Logger
	recorder Recorder
	timeout  time.Duration
	queue    chan Event

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, log *slog.Logger, recorder Recorder, cfg DispatcherConfig) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	d := &Dispatcher{
		sender:   sender,
		log:      log,
		recorder: recorder,
		timeout:  cfg.Timeout,
		queue:    make(chan Event, cfg.QueueSize),
	}

	d.wg.Add(cfg.Workers)
	for range cfg.Workers {
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, ev); err != nil {
		d.log.Error("notification failed",
			"sender", d.sender.Name(),
			"event", ev.Event,
			"appointment_id", ev.AppointmentID,
			"err", err,
		)
		d.record("failed")
		return
	}
	d.record("sent")
}

// Enqueue reports false when the event was dropped.
func (d *Dispatcher) Enqueue(ev Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.record("dropped")
		return false
	}

	select {
	case d.queue <- ev:
		return true
	default:
		d.log.Warn("notification queue full, dropping event",
			"event", ev.Event,
			"appointment_id", ev.AppointmentID,
		)
		d.record("dropped")
		return false
	}
}

// Close stops intake and waits until queued events were attempted.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) record(result string) {
	if d.recorder != nil {
		d.recorder.NotificationResult(d.sender.Name(), result)
	}
}
