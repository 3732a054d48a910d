package appointment

import (
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/lock"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type Notifier interface {
	Enqueue(ev notify.Event) bool
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// Policy holds the tunable booking rules.
type Policy struct {
	GridStep                  time.Duration
	PastGrace                 time.Duration
	OverrideEnforcesPastCheck bool
	PaymentMethod             string
}

func DefaultPolicy() Policy {
	return Policy{
		GridStep:                  domain.DefaultSlotStep,
		PastGrace:                 5 * time.Minute,
		OverrideEnforcesPastCheck: true,
		PaymentMethod:             "pix",
	}
}

// Deps is shared by every appointment use case.
type Deps struct {
	Repo     domain.Repository
	Locker   lock.Locker
	Notifier Notifier
	Audit    Auditor
	Metrics  *metrics.Metrics
	Clock    Clock
	Log      *slog.Logger
	Policy   Policy
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = SystemClock{}
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Locker == nil {
		d.Locker = lock.NewKeyedMutex()
	}
	if d.Policy.GridStep <= 0 {
		d.Policy.GridStep = domain.DefaultSlotStep
	}
	if d.Policy.PaymentMethod == "" {
		d.Policy.PaymentMethod = "pix"
	}
	return d
}

func (d Deps) audit(ev audit.Event) {
	if d.Audit != nil {
		d.Audit.Dispatch(ev)
	}
}
