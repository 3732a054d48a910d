package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func (e *env) slots(t *testing.T, date string, services ...models.Service) *Availability {
	t.Helper()
	ids := make([]uint, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}
	out, err := e.preview.Execute(context.Background(), GetAvailabilityInput{
		BarbershopID: e.f.Shop.ID,
		BarberID:     e.f.Barber.ID,
		ServiceIDs:   ids,
		Date:         date,
	})
	require.NoError(t, err)
	return out
}

func hhmm(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Format("15:04"))
	}
	return out
}

func TestGetAvailability_EmptyMonday(t *testing.T) {
	e := newEnv(t)

	out := e.slots(t, testutil.Monday, e.f.Haircut)

	assert.Equal(t, testutil.Monday, out.Date)
	assert.Equal(t, "America/Sao_Paulo", out.Timezone)
	assert.Equal(t, domain.SourceWeekly, out.Source)
	// 30 min + 5 min buffer must end by 18:00; the last grid tick is 17:15.
	require.Len(t, out.Slots, 38)
	assert.Equal(t, "08:00", out.Slots[0].Format("15:04"))
	assert.Equal(t, "17:15", out.Slots[len(out.Slots)-1].Format("15:04"))
	assert.Equal(t, e.f.Location().String(), out.Slots[0].Location().String())
}

func TestGetAvailability_SkipsBufferedBooking(t *testing.T) {
	e := newEnv(t)
	e.book(t, e.f.At(testutil.Monday, 10, 0), e.f.Haircut)

	got := hhmm(e.slots(t, testutil.Monday, e.f.Haircut).Slots)

	assert.Contains(t, got, "09:15")
	assert.NotContains(t, got, "09:30")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:15")
	assert.Contains(t, got, "10:35")
}

func TestGetAvailability_PreviewMatchesCommit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	before := e.slots(t, testutil.Monday, e.f.Haircut, e.f.Beard).Slots
	require.NotEmpty(t, before)
	chosen := before[4]

	e.book(t, chosen, e.f.Haircut, e.f.Beard)

	after := e.slots(t, testutil.Monday, e.f.Haircut, e.f.Beard).Slots
	for _, s := range after {
		assert.False(t, s.Equal(chosen))
	}

	// Every remaining slot must still be bookable; try both neighbours.
	require.NotEmpty(t, after)
	for _, s := range []time.Time{after[0], after[len(after)-1]} {
		_, err := e.create.Execute(ctx, e.input(s, e.f.Haircut, e.f.Beard))
		assert.NoError(t, err, s)
	}
}

func TestGetAvailability_ClampsToNow(t *testing.T) {
	e := newEnv(t)
	e.setNow(e.f.At(testutil.Monday, 10, 7))

	got := e.slots(t, testutil.Monday, e.f.Haircut).Slots

	require.NotEmpty(t, got)
	assert.Equal(t, "10:15", got[0].Format("15:04"))
}

func TestGetAvailability_EmptyDays(t *testing.T) {
	e := newEnv(t)

	beyond := e.slots(t, "2026-04-06", e.f.Haircut)
	assert.Empty(t, beyond.Slots)

	tuesday := e.slots(t, "2026-03-03", e.f.Haircut)
	assert.Empty(t, tuesday.Slots)
	assert.Equal(t, domain.SourceNone, tuesday.Source)

	require.NoError(t, e.f.DB.Create(&models.ScheduleException{
		BarbershopID: e.f.Shop.ID,
		BarberID:     e.f.Barber.ID,
		Date:         testutil.Monday,
		Kind:         models.ExceptionBlocked,
	}).Error)
	blocked := e.slots(t, testutil.Monday, e.f.Haircut)
	assert.Empty(t, blocked.Slots)
	assert.Equal(t, domain.SourceBlocked, blocked.Source)
}

func TestGetAvailability_DailyOverride(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.f.DB.Create(&models.DailyAvailability{
		BarbershopID: e.f.Shop.ID,
		BarberID:     e.f.Barber.ID,
		Date:         "2026-03-03",
		StartTime:    "09:00",
		EndTime:      "10:00",
		Active:       true,
	}).Error)

	out := e.slots(t, "2026-03-03", e.f.Haircut)

	assert.Equal(t, domain.SourceDaily, out.Source)
	assert.Equal(t, []string{"09:00", "09:15"}, hhmm(out.Slots))
}

func TestGetAvailability_Errors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.preview.Execute(ctx, GetAvailabilityInput{
		BarbershopID: e.f.Shop.ID, BarberID: e.f.Barber.ID,
		ServiceIDs: []uint{e.f.Haircut.ID}, Date: "02/03/2026",
	})
	assert.Equal(t, httperr.CodeInvalidDate, httperr.CodeOf(err))

	_, err = e.preview.Execute(ctx, GetAvailabilityInput{
		BarbershopID: e.f.Shop.ID, BarberID: e.f.Barber.ID, Date: testutil.Monday,
	})
	assert.Equal(t, httperr.CodeNoServices, httperr.CodeOf(err))

	_, err = e.preview.Execute(ctx, GetAvailabilityInput{
		BarbershopID: 9999, BarberID: e.f.Barber.ID,
		ServiceIDs: []uint{e.f.Haircut.ID}, Date: testutil.Monday,
	})
	assert.Equal(t, httperr.CodeBarbershopNotFound, httperr.CodeOf(err))
}

func TestResolveAvailability(t *testing.T) {
	e := newEnv(t)
	other := testutil.Seed(t, e.f.DB, "bairro")
	uc := NewResolveAvailability(e.deps.Repo)
	ctx := context.Background()

	day, err := uc.Execute(ctx, e.f.Shop.ID, e.f.Barber.ID, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceWeekly, day.Source)
	require.Len(t, day.Intervals, 1)
	assert.True(t, day.Intervals[0].Start.Equal(e.f.At(testutil.Monday, 8, 0)))

	_, err = uc.Execute(ctx, e.f.Shop.ID, other.Barber.ID, testutil.Monday)
	assert.Equal(t, httperr.CodeBarberNotFound, httperr.CodeOf(err))

	_, err = uc.Execute(ctx, e.f.Shop.ID, e.f.Barber.ID, "monday")
	assert.Equal(t, httperr.CodeInvalidDate, httperr.CodeOf(err))
}

func TestListAppointments(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewListAppointments(e.deps.Repo)

	e.book(t, e.f.At(testutil.Monday, 14, 0), e.f.Haircut, e.f.Beard)
	e.book(t, e.f.At(testutil.Monday, 9, 0), e.f.Haircut)

	day, err := uc.ByDate(ctx, e.f.Shop.ID, e.f.Barber.ID, testutil.Monday)
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "09:00", day[0].StartTime.Format("15:04"))
	assert.Equal(t, "14:50", day[1].EndTime.Format("15:04"))
	assert.Equal(t, []string{"Corte", "Barba"}, day[1].ServiceNames)
	assert.Equal(t, "75.5", day[1].Total.String())

	month, err := uc.ByMonth(ctx, e.f.Shop.ID, e.f.Barber.ID, 2026, 3)
	require.NoError(t, err)
	assert.Len(t, month, 2)

	empty, err := uc.ByDate(ctx, e.f.Shop.ID, e.f.Barber.ID, "2026-03-03")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = uc.ByMonth(ctx, e.f.Shop.ID, e.f.Barber.ID, 2026, 13)
	assert.Equal(t, httperr.CodeInvalidDate, httperr.CodeOf(err))
}
