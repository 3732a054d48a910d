package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func insertAppointment(t *testing.T, f *testutil.Fixture, status string, start, end time.Time) models.Appointment {
	t.Helper()
	ap := models.Appointment{
		BarbershopID: f.Shop.ID,
		BarberID:     f.Barber.ID,
		ClientName:   "Maria",
		StartTime:    start.UTC(),
		Status:       status,
		Services: []models.AppointmentService{
			{ServiceID: f.Haircut.ID, Position: 0, Name: "Corte", DurationMin: 30, Price: f.Haircut.Price},
		},
		Slot: &models.TimeSlot{BarberID: f.Barber.ID, StartTime: start.UTC(), EndTime: end.UTC()},
	}
	require.NoError(t, f.DB.Create(&ap).Error)
	return ap
}

func TestAppointmentRepository_LookupsAreTenantScoped(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	other := testutil.Seed(t, db, "bairro")
	repo := repository.NewAppointmentGormRepository(db)
	ctx := context.Background()

	shop, err := repo.GetBarbershopBySlug(ctx, "centro")
	require.NoError(t, err)
	assert.Equal(t, f.Shop.ID, shop.ID)

	_, err = repo.GetBarbershopBySlug(ctx, "nowhere")
	assert.Equal(t, httperr.CodeBarbershopNotFound, httperr.CodeOf(err))

	_, err = repo.GetBarber(ctx, f.Shop.ID, other.Barber.ID)
	assert.Equal(t, httperr.CodeBarberNotFound, httperr.CodeOf(err))

	services, err := repo.ListServices(ctx, f.Shop.ID, []uint{f.Haircut.ID, other.Haircut.ID, f.Inactive.ID})
	require.NoError(t, err)
	assert.Len(t, services, 2)
}

func TestAppointmentRepository_InactiveBarberIsHidden(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	repo := repository.NewAppointmentGormRepository(db)

	require.NoError(t, db.Model(&f.Barber).Update("active", false).Error)

	_, err := repo.GetBarber(context.Background(), f.Shop.ID, f.Barber.ID)
	assert.Equal(t, httperr.CodeBarberNotFound, httperr.CodeOf(err))
}

func TestAppointmentRepository_ListConfirmedSlots(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	repo := repository.NewAppointmentGormRepository(db)

	insertAppointment(t, f, "confirmed", f.At(testutil.Monday, 9, 0), f.At(testutil.Monday, 9, 30))
	insertAppointment(t, f, "cancelled", f.At(testutil.Monday, 10, 0), f.At(testutil.Monday, 10, 30))
	insertAppointment(t, f, "confirmed", f.At(testutil.Monday, 11, 0), f.At(testutil.Monday, 11, 30))

	got, err := repo.ListConfirmedSlots(context.Background(), f.Barber.ID,
		f.At(testutil.Monday, 9, 30), f.At(testutil.Monday, 11, 0))
	require.NoError(t, err)
	assert.Empty(t, got, "touching reservations do not overlap")

	got, err = repo.ListConfirmedSlots(context.Background(), f.Barber.ID,
		f.At(testutil.Monday, 8, 0), f.At(testutil.Monday, 12, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Start.Equal(f.At(testutil.Monday, 9, 0)))
	assert.True(t, got[1].End.Equal(f.At(testutil.Monday, 11, 30)))
}

func TestAppointmentRepository_LoadDayRules(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	repo := repository.NewAppointmentGormRepository(db)

	require.NoError(t, db.Create(&models.ScheduleException{
		BarbershopID: f.Shop.ID, BarberID: f.Barber.ID, Date: testutil.Monday,
		Kind: models.ExceptionExtended, StartTime: "18:00", EndTime: "20:00",
	}).Error)

	rules, err := repo.LoadDayRules(context.Background(), f.Shop.ID, f.Barber.ID, testutil.Monday, int(time.Monday))
	require.NoError(t, err)
	assert.Len(t, rules.Weekly, 1)
	assert.Empty(t, rules.Daily)
	assert.Len(t, rules.Exceptions, 1)

	day := domain.ResolveDay(f.At(testutil.Monday, 0, 0), rules)
	assert.Equal(t, domain.SourceExtended, day.Source)
	require.Len(t, day.Intervals, 1)
	assert.True(t, day.Intervals[0].End.Equal(f.At(testutil.Monday, 20, 0)))
}

func TestAppointmentRepository_GetForUpdateAndStatus(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	repo := repository.NewAppointmentGormRepository(db)
	ctx := context.Background()

	ap := insertAppointment(t, f, "confirmed", f.At(testutil.Monday, 9, 0), f.At(testutil.Monday, 9, 30))

	err := repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		loaded, err := tx.GetAppointmentForUpdate(ctx, f.Shop.ID, ap.ID)
		if err != nil {
			return err
		}
		if !assert.Len(t, loaded.Services, 1) || !assert.NotNil(t, loaded.Slot) {
			return nil
		}
		loaded.Status = "cancelled"
		now := time.Now()
		loaded.CancelledAt = &now
		return tx.UpdateAppointmentStatus(ctx, loaded)
	})
	require.NoError(t, err)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, ap.ID).Error)
	assert.Equal(t, "cancelled", stored.Status)
	assert.NotNil(t, stored.CancelledAt)
	assert.Equal(t, "Maria", stored.ClientName)

	_, err = repo.GetAppointmentForUpdate(ctx, f.Shop.ID+100, ap.ID)
	assert.Equal(t, httperr.CodeAppointmentNotFound, httperr.CodeOf(err))
}

func TestAppointmentRepository_TransactionRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	repo := repository.NewAppointmentGormRepository(db)
	ctx := context.Background()

	err := repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		if err := tx.RecordIncome(ctx, &models.FinanceTransaction{
			BarbershopID: f.Shop.ID,
			Amount:       decimal.NewFromInt(10),
			Kind:         "income",
		}); err != nil {
			return err
		}
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	var count int64
	require.NoError(t, db.Model(&models.FinanceTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAppointmentRepository_AccrueLoyaltyUpserts(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	repo := repository.NewAppointmentGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.AccrueLoyalty(ctx, f.Shop.ID, f.Customer.ID, decimal.RequireFromString("49.90"), "2026-03-02"))
	require.NoError(t, repo.AccrueLoyalty(ctx, f.Shop.ID, f.Customer.ID, decimal.RequireFromString("30.00"), "2026-03-09"))

	var rows []models.CustomerLoyalty
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(79), rows[0].Points)
	assert.True(t, decimal.RequireFromString("79.90").Equal(rows[0].TotalSpent), rows[0].TotalSpent.String())
	assert.Equal(t, "2026-03-09", rows[0].LastVisit)
}
