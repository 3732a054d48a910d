package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Transaction --------
	// WithinTransaction runs fn against a repository bound to one
	// database transaction. Inside fn only the given repository may be used.
	WithinTransaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Barbershop / Barber --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.Barber, error)

	GetBarberForUpdate(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.Barber, error)

	// -------- Services --------
	ListServices(
		ctx context.Context,
		barbershopID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Availability --------
	LoadDayRules(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		date string,
		weekday int,
	) (DayRules, error)

	ListConfirmedSlots(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]Booked, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForUpdate(
		ctx context.Context,
		barbershopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	FinanceRecorder
	LoyaltyAccruer
}

type FinanceRecorder interface {
	RecordIncome(
		ctx context.Context,
		tx *models.FinanceTransaction,
	) error
}

type LoyaltyAccruer interface {
	AccrueLoyalty(
		ctx context.Context,
		barbershopID uint,
		customerID uint,
		amount decimal.Decimal,
		visitDate string,
	) error
}

// ScheduleRepository manages the stored availability rules of a barber.
type ScheduleRepository interface {
	ListWeekly(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) ([]models.WeeklyAvailability, error)

	ReplaceWeekly(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		rows []models.WeeklyAvailability,
	) error

	ReplaceDaily(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		date string,
		rows []models.DailyAvailability,
	) error

	CreateException(
		ctx context.Context,
		ex *models.ScheduleException,
	) error

	DeleteException(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		id uint,
	) error
}
