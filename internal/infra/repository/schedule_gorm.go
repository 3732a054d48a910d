package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) ListWeekly(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) ([]models.WeeklyAvailability, error) {

	var rows []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id = ?", barbershopID, barberID).
		Order("weekday ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceWeekly swaps the whole weekly template of a barber.
func (r *ScheduleGormRepository) ReplaceWeekly(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	rows []models.WeeklyAvailability,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ? AND barber_id = ?", barbershopID, barberID).
			Delete(&models.WeeklyAvailability{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].BarbershopID = barbershopID
			rows[i].BarberID = barberID
		}
		return tx.Create(&rows).Error
	})
}

func (r *ScheduleGormRepository) ReplaceDaily(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
	rows []models.DailyAvailability,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ? AND barber_id = ? AND date = ?", barbershopID, barberID, date).
			Delete(&models.DailyAvailability{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].BarbershopID = barbershopID
			rows[i].BarberID = barberID
			rows[i].Date = date
		}
		return tx.Create(&rows).Error
	})
}

func (r *ScheduleGormRepository) CreateException(
	ctx context.Context,
	ex *models.ScheduleException,
) error {
	return r.db.WithContext(ctx).Create(ex).Error
}

func (r *ScheduleGormRepository) DeleteException(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	id uint,
) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND barber_id = ?", id, barbershopID, barberID).
		Delete(&models.ScheduleException{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound(httperr.CodeExceptionNotFound)
	}
	return nil
}

// Compile-time check
var _ domain.ScheduleRepository = (*ScheduleGormRepository)(nil)
