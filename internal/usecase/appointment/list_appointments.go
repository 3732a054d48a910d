package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ListAppointments is the barber's agenda for a day or a month, in the
// barbershop's zone.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	day, err := domain.ParseDate(date, loc)
	if err != nil {
		return nil, httperr.ErrValidation(httperr.CodeInvalidDate)
	}
	start, end := timezone.DayBounds(day)

	return uc.list(ctx, barbershopID, barberID, start, end, loc)
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1 {
		return nil, httperr.ErrValidation(httperr.CodeInvalidDate)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, barbershopID, barberID, start, end, loc)
}

func (uc *ListAppointments) list(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
	loc *time.Location,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetBarber(ctx, barbershopID, barberID); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, barbershopID, barberID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(ap, loc))
	}
	return out, nil
}

func toListDTO(ap models.Appointment, loc *time.Location) dto.AppointmentListDTO {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, s.Name)
	}

	end := ap.StartTime
	if ap.Slot != nil {
		end = ap.Slot.EndTime
	}

	return dto.AppointmentListDTO{
		ID:           ap.ID,
		StartTime:    ap.StartTime.In(loc),
		EndTime:      end.In(loc),
		Status:       ap.Status,
		Platform:     ap.Platform,
		Override:     ap.Override,
		ClientName:   ap.ClientName,
		ClientPhone:  ap.ClientPhone,
		ServiceNames: names,
		Total:        totalPrice(ap.Services),
	}
}
