package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound turns a missing row into the given business code.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinTransaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Barbershop / Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&shop).Error; err != nil {
		return nil, notFound(err, httperr.CodeBarbershopNotFound)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&shop).Error; err != nil {
		return nil, notFound(err, httperr.CodeBarbershopNotFound)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = ?", barberID, barbershopID, true).
		First(&barber).Error; err != nil {
		return nil, notFound(err, httperr.CodeBarberNotFound)
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetBarberForUpdate(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Clauses(forUpdate()).
		Where("id = ? AND barbershop_id = ? AND active = ?", barberID, barbershopID, true).
		First(&barber).Error; err != nil {
		return nil, notFound(err, httperr.CodeBarberNotFound)
	}
	return &barber, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

// ListServices returns the tenant's services among ids, active or not.
func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	barbershopID uint,
	ids []uint,
) ([]models.Service, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND id IN ?", barbershopID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) LoadDayRules(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
	weekday int,
) (domain.DayRules, error) {

	var rules domain.DayRules
	db := r.db.WithContext(ctx)

	if err := db.
		Where("barbershop_id = ? AND barber_id = ? AND date = ?", barbershopID, barberID, date).
		Find(&rules.Exceptions).Error; err != nil {
		return rules, err
	}

	if err := db.
		Where("barbershop_id = ? AND barber_id = ? AND date = ? AND active = ?", barbershopID, barberID, date, true).
		Find(&rules.Daily).Error; err != nil {
		return rules, err
	}

	if err := db.
		Where("barbershop_id = ? AND barber_id = ? AND weekday = ? AND active = ?", barbershopID, barberID, weekday, true).
		Find(&rules.Weekly).Error; err != nil {
		return rules, err
	}

	return rules, nil
}

// ListConfirmedSlots returns confirmed reservations of the barber that
// overlap [from, to).
func (r *AppointmentGormRepository) ListConfirmedSlots(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]domain.Booked, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Select("time_slots.start_time", "time_slots.end_time").
		Joins("JOIN appointments ON appointments.id = time_slots.appointment_id").
		Where(
			"time_slots.barber_id = ? AND appointments.status = ? AND time_slots.start_time < ? AND time_slots.end_time > ?",
			barberID,
			string(domain.StatusConfirmed),
			to.UTC(),
			from.UTC(),
		).
		Order("time_slots.start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booked, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.Booked{Start: s.StartTime, End: s.EndTime})
	}
	return out, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment inserts the appointment with its service rows and
// time slot. Instants are stored in UTC.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.StartTime = ap.StartTime.UTC()
	if ap.Slot != nil {
		ap.Slot.StartTime = ap.Slot.StartTime.UTC()
		ap.Slot.EndTime = ap.Slot.EndTime.UTC()
	}
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	db := r.db.WithContext(ctx)

	var ap models.Appointment
	if err := db.
		Clauses(forUpdate()).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, httperr.CodeAppointmentNotFound)
	}

	if err := db.
		Where("appointment_id = ?", ap.ID).
		Order("position ASC").
		Find(&ap.Services).Error; err != nil {
		return nil, err
	}

	var slot models.TimeSlot
	err := db.Where("appointment_id = ?", ap.ID).First(&slot).Error
	switch {
	case err == nil:
		ap.Slot = &slot
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Select("Status", "PaymentStatus", "CancelledAt", "CompletedAt", "UpdatedAt").
		Updates(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Slot").
		Where(
			"barbershop_id = ? AND barber_id = ? AND start_time >= ? AND start_time < ?",
			barbershopID,
			barberID,
			from.UTC(),
			to.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Finance / Loyalty
// --------------------------------------------------

func (r *AppointmentGormRepository) RecordIncome(
	ctx context.Context,
	tx *models.FinanceTransaction,
) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// AccrueLoyalty adds amount and its whole-unit points to the customer's
// balance at the barbershop, creating the row on the first visit.
func (r *AppointmentGormRepository) AccrueLoyalty(
	ctx context.Context,
	barbershopID uint,
	customerID uint,
	amount decimal.Decimal,
	visitDate string,
) error {

	points := amount.Floor().IntPart()
	row := models.CustomerLoyalty{
		BarbershopID: barbershopID,
		CustomerID:   customerID,
		TotalSpent:   amount,
		Points:       points,
		LastVisit:    visitDate,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barbershop_id"}, {Name: "customer_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_spent": gorm.Expr("customer_loyalties.total_spent + ?", amount),
				"points":      gorm.Expr("customer_loyalties.points + ?", points),
				"last_visit":  visitDate,
				"updated_at":  time.Now().UTC(),
			}),
		}).
		Create(&row).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
