package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ResolveAvailability answers which working intervals a barber has on a date.
type ResolveAvailability struct {
	repo domain.Repository
}

func NewResolveAvailability(repo domain.Repository) *ResolveAvailability {
	return &ResolveAvailability{repo: repo}
}

func (uc *ResolveAvailability) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
) (domain.DaySchedule, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	day, err := domain.ParseDate(date, timezone.Location(shop.Timezone))
	if err != nil {
		return domain.DaySchedule{}, httperr.ErrValidation(httperr.CodeInvalidDate)
	}

	if _, err := uc.repo.GetBarber(ctx, barbershopID, barberID); err != nil {
		return domain.DaySchedule{}, err
	}

	return resolveDay(ctx, uc.repo, barbershopID, barberID, day)
}

// resolveDay loads the rules stored for day's date and resolves them in
// day's location. repo may be bound to a transaction.
func resolveDay(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	barberID uint,
	day time.Time,
) (domain.DaySchedule, error) {

	rules, err := repo.LoadDayRules(
		ctx,
		barbershopID,
		barberID,
		day.Format(domain.DateLayout),
		int(day.Weekday()),
	)
	if err != nil {
		return domain.DaySchedule{}, err
	}
	return domain.ResolveDay(day, rules), nil
}

// beyondHorizon reports whether day falls after the last bookable date.
// A horizon of zero days disables the limit.
func beyondHorizon(horizonDays int, day, now time.Time) bool {
	if horizonDays <= 0 {
		return false
	}
	today, _ := timezone.DayBounds(now.In(day.Location()))
	last := today.AddDate(0, 0, horizonDays)
	dayStart, _ := timezone.DayBounds(day)
	return dayStart.After(last)
}
