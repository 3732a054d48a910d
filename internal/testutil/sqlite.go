// Package testutil builds seeded in-memory databases for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := dbpkg.Open("sqlite", ":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fixture is one barbershop in America/Sao_Paulo with a barber working
// Mondays 08:00-18:00 and a small service catalog.
type Fixture struct {
	DB       *gorm.DB
	Shop     models.Barbershop
	Barber   models.Barber
	Haircut  models.Service // 30 min, 5 min buffer, 50.00
	Beard    models.Service // 20 min, no buffer, 25.50
	Long     models.Service // 60 min, no buffer, 80.00
	Inactive models.Service
	Customer models.Customer
}

// Monday is 2026-03-02.
const Monday = "2026-03-02"

func Seed(t testing.TB, db *gorm.DB, slug string) *Fixture {
	t.Helper()

	f := &Fixture{DB: db}

	f.Shop = models.Barbershop{Name: "Navalha " + slug, Slug: slug, Timezone: "America/Sao_Paulo"}
	require.NoError(t, db.Create(&f.Shop).Error)

	f.Barber = models.Barber{
		BarbershopID:       f.Shop.ID,
		Name:               "Carlos",
		BufferMinutes:      5,
		BookingHorizonDays: 30,
	}
	require.NoError(t, db.Create(&f.Barber).Error)

	f.Haircut = service(t, db, f.Shop.ID, "Corte", 30, 5, "50.00")
	f.Beard = service(t, db, f.Shop.ID, "Barba", 20, 0, "25.50")
	f.Long = service(t, db, f.Shop.ID, "Platinado", 60, 0, "80.00")
	f.Inactive = service(t, db, f.Shop.ID, "Relaxamento", 40, 0, "60.00")
	// default:true on Active ignores a false zero value on insert.
	require.NoError(t, db.Model(&f.Inactive).Update("active", false).Error)
	f.Inactive.Active = false

	require.NoError(t, db.Create(&models.WeeklyAvailability{
		BarbershopID: f.Shop.ID,
		BarberID:     f.Barber.ID,
		Weekday:      int(time.Monday),
		StartTime:    "08:00",
		EndTime:      "18:00",
		Active:       true,
	}).Error)

	f.Customer = models.Customer{Name: "João", Phone: "+5511999990000"}
	require.NoError(t, db.Create(&f.Customer).Error)

	return f
}

func service(t testing.TB, db *gorm.DB, shopID uint, name string, duration, buffer int, price string) models.Service {
	t.Helper()
	s := models.Service{
		BarbershopID: shopID,
		Name:         name,
		DurationMin:  duration,
		BufferMin:    buffer,
		Price:        decimal.RequireFromString(price),
		Active:       true,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

// Location is the fixture barbershop's zone.
func (f *Fixture) Location() *time.Location {
	loc, err := time.LoadLocation(f.Shop.Timezone)
	if err != nil {
		panic(err)
	}
	return loc
}

// At returns date at hh:mm in the barbershop's zone.
func (f *Fixture) At(date string, hh, mm int) time.Time {
	d, err := time.ParseInLocation("2006-01-02", date, f.Location())
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, d.Location())
}
