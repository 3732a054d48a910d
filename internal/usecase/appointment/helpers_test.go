package appointment

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/lock"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingNotifier) Enqueue(ev notify.Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return true
}

func (r *recordingNotifier) all() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingAuditor) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type env struct {
	f        *testutil.Fixture
	deps     Deps
	notifier *recordingNotifier
	auditor  *recordingAuditor

	create   *CreateAppointment
	cancel   *CancelAppointment
	complete *CompleteAppointment
	preview  *GetAvailability
}

// newEnv starts on Sunday 2026-03-01 12:00 in São Paulo, the day before
// the fixture's working Monday.
func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")

	e := &env{
		f:        f,
		notifier: &recordingNotifier{},
		auditor:  &recordingAuditor{},
	}
	e.deps = Deps{
		Repo:     repository.NewAppointmentGormRepository(db),
		Locker:   lock.NewKeyedMutex(),
		Notifier: e.notifier,
		Audit:    e.auditor,
		Metrics:  metrics.New(prometheus.NewRegistry(), "test"),
		Clock:    fixedClock{now: f.At("2026-03-01", 12, 0)},
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Policy:   DefaultPolicy(),
	}
	e.rebuild()
	return e
}

func (e *env) rebuild() {
	e.create = NewCreateAppointment(e.deps)
	e.cancel = NewCancelAppointment(e.deps)
	e.complete = NewCompleteAppointment(e.deps)
	e.preview = NewGetAvailability(e.deps)
}

func (e *env) setNow(t time.Time) {
	e.deps.Clock = fixedClock{now: t}
	e.rebuild()
}

func (e *env) input(start time.Time, services ...models.Service) CreateAppointmentInput {
	ids := make([]uint, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}
	return CreateAppointmentInput{
		BarbershopID: e.f.Shop.ID,
		BarberID:     e.f.Barber.ID,
		ServiceIDs:   ids,
		ClientName:   "Maria",
		ClientPhone:  "+5511988887777",
		Start:        start,
	}
}

func (e *env) book(t *testing.T, start time.Time, services ...models.Service) *models.Appointment {
	t.Helper()
	ap, err := e.create.Execute(context.Background(), e.input(start, services...))
	require.NoError(t, err)
	return ap
}
