package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceIDs   []uint
	Date         string // YYYY-MM-DD in the barbershop's zone
}

type Availability struct {
	Date     string        `json:"date"`
	Timezone string        `json:"timezone"`
	Source   domain.Source `json:"source"`
	Slots    []time.Time   `json:"slots"`
}

// GetAvailability previews bookable start times. It takes no lock, so a
// listed slot may be gone by the time it is booked.
type GetAvailability struct {
	deps Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{deps: deps.withDefaults()}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*Availability, error) {

	repo := uc.deps.Repo

	shop, err := repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	day, err := domain.ParseDate(in.Date, loc)
	if err != nil {
		return nil, httperr.ErrValidation(httperr.CodeInvalidDate)
	}

	barber, err := repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, err
	}

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrValidation(httperr.CodeNoServices)
	}
	services, err := repo.ListServices(ctx, in.BarbershopID, domain.UniqueIDs(in.ServiceIDs))
	if err != nil {
		return nil, err
	}
	sel, err := domain.NewServiceSelection(in.ServiceIDs, services)
	if err != nil {
		return nil, err
	}

	out := &Availability{
		Date:     day.Format(domain.DateLayout),
		Timezone: timezone.Name(shop.Timezone),
		Source:   domain.SourceNone,
		Slots:    []time.Time{},
	}

	now := uc.deps.Clock.Now()
	if beyondHorizon(barber.BookingHorizonDays, day, now) {
		return out, nil
	}

	schedule, err := resolveDay(ctx, repo, in.BarbershopID, barber.ID, day)
	if err != nil {
		return nil, err
	}
	out.Source = schedule.Source

	first, last, ok := schedule.Bounds()
	if !ok {
		return out, nil
	}

	defaultBuffer := time.Duration(barber.BufferMinutes) * time.Minute
	buffer := sel.TotalBuffer(defaultBuffer)

	booked, err := repo.ListConfirmedSlots(ctx, barber.ID, first.Add(-buffer), last)
	if err != nil {
		return nil, err
	}

	slots := domain.GenerateSlots(domain.SlotQuery{
		Schedule: schedule,
		Span:     sel.NeededSpan(defaultBuffer),
		Buffer:   buffer,
		Booked:   booked,
		Now:      now,
		Step:     uc.deps.Policy.GridStep,
	})
	for _, s := range slots {
		out.Slots = append(out.Slots, s.In(loc))
	}

	return out, nil
}
