package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/lock"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CancelAppointment frees the appointment's time. The time slot row is
// kept; cancelled appointments are ignored by collision checks.
type CancelAppointment struct {
	deps Deps
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{deps: deps.withDefaults()}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
	actorID *uint,
) (*models.Appointment, error) {

	waitStart := time.Now()
	unlock, err := uc.deps.Locker.Lock(ctx, lock.AppointmentKey(appointmentID))
	if err != nil {
		return nil, err
	}
	defer unlock()
	uc.deps.Metrics.LockWait(time.Since(waitStart))

	var (
		ap      *models.Appointment
		changed bool
	)
	err = uc.deps.Repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForUpdate(ctx, barbershopID, appointmentID)
		if err != nil {
			return err
		}

		changed, err = domain.Cancel(ap, uc.deps.Clock.Now())
		if err != nil || !changed {
			return err
		}
		return tx.UpdateAppointmentStatus(ctx, ap)
	})
	if err != nil {
		uc.deps.Metrics.Transition(string(domain.StatusCancelled), outcomeOf(err))
		return nil, err
	}

	if !changed {
		uc.deps.Metrics.Transition(string(domain.StatusCancelled), "noop")
		return ap, nil
	}

	uc.deps.audit(audit.Event{
		BarbershopID: barbershopID,
		UserID:       actorID,
		Action:       audit.ActionAppointmentCancelled,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})
	uc.deps.Metrics.Transition(string(domain.StatusCancelled), "changed")
	uc.deps.Log.InfoContext(ctx, "appointment cancelled",
		"appointment_id", ap.ID,
		"barbershop_id", barbershopID,
	)

	return ap, nil
}
