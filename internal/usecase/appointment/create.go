package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/lock"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceIDs   []uint
	CustomerID   *uint

	ClientName  string
	ClientPhone string

	// Start wins over Date + Time, which are read in the barbershop's zone.
	Start time.Time
	Date  string
	Time  string

	Platform string
	Override bool

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment books a time with a barber. Attempts for the same
// barber run one at a time and re-check every rule under the lock.
type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, sel, shop, err := uc.execute(ctx, in)
	if err != nil {
		outcome := httperr.CodeOf(err)
		if outcome == "" {
			outcome = "error"
			uc.deps.Log.ErrorContext(ctx, "create appointment failed",
				"barbershop_id", in.BarbershopID,
				"barber_id", in.BarberID,
				"err", err,
			)
		}
		uc.deps.Metrics.Booking(outcome, in.Override)
		return nil, err
	}

	uc.afterCommit(ctx, in, ap, sel, shop)
	return ap, nil
}

func (uc *CreateAppointment) execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, domain.ServiceSelection, *models.Barbershop, error) {

	var sel domain.ServiceSelection

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" {
		return nil, sel, nil, httperr.ErrValidation(httperr.CodeInvalidInput)
	}
	platform, err := domain.ParsePlatform(in.Platform)
	if err != nil {
		return nil, sel, nil, err
	}
	if len(in.ServiceIDs) == 0 {
		return nil, sel, nil, httperr.ErrValidation(httperr.CodeNoServices)
	}

	shop, err := uc.deps.Repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, sel, nil, err
	}
	loc := timezone.Location(shop.Timezone)

	start, err := startInstant(in, loc)
	if err != nil {
		return nil, sel, nil, err
	}

	// --------------------------------------------------
	// 2. Per-barber lock
	// --------------------------------------------------
	waitStart := time.Now()
	unlock, err := uc.deps.Locker.Lock(ctx, lock.BarberKey(in.BarbershopID, in.BarberID))
	if err != nil {
		return nil, sel, nil, err
	}
	defer unlock()
	uc.deps.Metrics.LockWait(time.Since(waitStart))

	var ap *models.Appointment

	err = uc.deps.Repo.WithinTransaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 3. Barber row lock + services
		// --------------------------------------------------
		barber, err := tx.GetBarberForUpdate(ctx, in.BarbershopID, in.BarberID)
		if err != nil {
			return err
		}

		services, err := tx.ListServices(ctx, in.BarbershopID, domain.UniqueIDs(in.ServiceIDs))
		if err != nil {
			return err
		}
		sel, err = domain.NewServiceSelection(in.ServiceIDs, services)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 4. Past check
		// --------------------------------------------------
		now := uc.deps.Clock.Now()
		if !in.Override || uc.deps.Policy.OverrideEnforcesPastCheck {
			if start.Before(now.Add(-uc.deps.Policy.PastGrace)) {
				return httperr.ErrBusiness(httperr.CodeDateInPast)
			}
		}

		end := start.Add(sel.TotalDuration())

		// --------------------------------------------------
		// 5. Working hours + collisions
		// --------------------------------------------------
		if !in.Override {
			if err := checkBookable(ctx, tx, in.BarbershopID, barber, sel, start, end, now, loc); err != nil {
				return err
			}
		}

		// --------------------------------------------------
		// 6. Persist
		// --------------------------------------------------
		ap = &models.Appointment{
			BarbershopID:  in.BarbershopID,
			BarberID:      barber.ID,
			CustomerID:    in.CustomerID,
			ClientName:    in.ClientName,
			ClientPhone:   strings.TrimSpace(in.ClientPhone),
			StartTime:     start,
			Status:        string(domain.InitialStatus()),
			Platform:      string(platform),
			PaymentStatus: domain.PaymentPending,
			Override:      in.Override,
			Services:      sel.AppointmentServices(),
			Slot: &models.TimeSlot{
				BarberID:  barber.ID,
				StartTime: start,
				EndTime:   end,
			},
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, sel, nil, err
	}

	return ap, sel, shop, nil
}

// checkBookable applies the rules an override skips: horizon, resolved
// working intervals and buffered collisions with confirmed reservations.
func checkBookable(
	ctx context.Context,
	tx domain.Repository,
	barbershopID uint,
	barber *models.Barber,
	sel domain.ServiceSelection,
	start, end, now time.Time,
	loc *time.Location,
) error {

	day := start.In(loc)
	if beyondHorizon(barber.BookingHorizonDays, day, now) {
		return httperr.ErrBusiness(httperr.CodeDateBeyondHorizon)
	}

	schedule, err := resolveDay(ctx, tx, barbershopID, barber.ID, day)
	if err != nil {
		return err
	}
	switch {
	case schedule.Blocked():
		return httperr.ErrBusiness(httperr.CodeDateBlocked)
	case len(schedule.Intervals) == 0:
		return httperr.ErrBusiness(httperr.CodeNotWorkingDay)
	case !schedule.Covers(start, end):
		return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	buffer := sel.TotalBuffer(time.Duration(barber.BufferMinutes) * time.Minute)
	booked, err := tx.ListConfirmedSlots(ctx, barber.ID, start.Add(-buffer), end.Add(buffer))
	if err != nil {
		return err
	}
	if domain.HasConflict(start, end.Sub(start)+buffer, buffer, booked) {
		return httperr.ErrConflict(httperr.CodeSlotUnavailable)
	}
	return nil
}

func startInstant(in CreateAppointmentInput, loc *time.Location) (time.Time, error) {
	if !in.Start.IsZero() {
		return in.Start, nil
	}
	if in.Date == "" || in.Time == "" {
		return time.Time{}, httperr.ErrValidation(httperr.CodeInvalidInput)
	}
	start, err := time.ParseInLocation(domain.DateLayout+" "+domain.ClockLayout, in.Date+" "+in.Time, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation(httperr.CodeInvalidDate)
	}
	return start, nil
}

// afterCommit runs the side effects of a stored booking. None of them
// can fail the request.
func (uc *CreateAppointment) afterCommit(
	ctx context.Context,
	in CreateAppointmentInput,
	ap *models.Appointment,
	sel domain.ServiceSelection,
	shop *models.Barbershop,
) {
	loc := timezone.Location(shop.Timezone)

	if uc.deps.Notifier != nil {
		uc.deps.Notifier.Enqueue(notify.NewAppointmentCreated(notify.AppointmentCreated{
			AppointmentID:  ap.ID,
			BarbershopName: shop.Name,
			ClientName:     ap.ClientName,
			ClientPhone:    ap.ClientPhone,
			ServiceNames:   sel.Names(),
			Start:          ap.StartTime,
			Timezone:       timezone.Name(shop.Timezone),
		}, loc))
	}

	uc.deps.audit(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorID,
		Action:       audit.ActionAppointmentCreated,
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"barber_id":   ap.BarberID,
			"service_ids": in.ServiceIDs,
			"start":       ap.StartTime.In(loc).Format(time.RFC3339),
			"platform":    ap.Platform,
			"override":    ap.Override,
		},
	})

	uc.deps.Metrics.Booking("created", in.Override)

	uc.deps.Log.InfoContext(ctx, "appointment created",
		"appointment_id", ap.ID,
		"barbershop_id", ap.BarbershopID,
		"barber_id", ap.BarberID,
		"start", ap.StartTime,
		"override", ap.Override,
	)
}
