package appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type SelectedService struct {
	ID       uint
	Name     string
	Duration time.Duration
	Buffer   time.Duration
	Price    decimal.Decimal
}

// ServiceSelection is the ordered, non-empty list of services of one booking.
type ServiceSelection struct {
	items []SelectedService
}

// NewServiceSelection orders the tenant-scoped services found by the
// repository the way the client asked for them.
func NewServiceSelection(ids []uint, found []models.Service) (ServiceSelection, error) {
	if len(ids) == 0 || len(found) == 0 {
		return ServiceSelection{}, httperr.ErrValidation(httperr.CodeNoServices)
	}

	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	items := make([]SelectedService, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return ServiceSelection{}, httperr.ErrNotFound(httperr.CodeServiceNotFound)
		}
		if !s.Active {
			return ServiceSelection{}, httperr.ErrBusiness(httperr.CodeServiceInactive)
		}
		items = append(items, SelectedService{
			ID:       s.ID,
			Name:     s.Name,
			Duration: time.Duration(s.DurationMin) * time.Minute,
			Buffer:   time.Duration(s.BufferMin) * time.Minute,
			Price:    s.Price,
		})
	}

	return ServiceSelection{items: items}, nil
}

func (s ServiceSelection) Items() []SelectedService {
	return s.items
}

func (s ServiceSelection) Len() int {
	return len(s.items)
}

func (s ServiceSelection) TotalDuration() time.Duration {
	var d time.Duration
	for _, it := range s.items {
		d += it.Duration
	}
	return d
}

// TotalBuffer is the larger of the summed service buffers and the
// barber's default buffer. The two are not added together.
func (s ServiceSelection) TotalBuffer(barberDefault time.Duration) time.Duration {
	var sum time.Duration
	for _, it := range s.items {
		sum += it.Buffer
	}
	return max(sum, barberDefault)
}

func (s ServiceSelection) NeededSpan(barberDefault time.Duration) time.Duration {
	return s.TotalDuration() + s.TotalBuffer(barberDefault)
}

func (s ServiceSelection) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Price)
	}
	return total
}

func (s ServiceSelection) Names() []string {
	names := make([]string, 0, len(s.items))
	for _, it := range s.items {
		names = append(names, it.Name)
	}
	return names
}

// AppointmentServices snapshots the selection as appointment rows.
func (s ServiceSelection) AppointmentServices() []models.AppointmentService {
	rows := make([]models.AppointmentService, 0, len(s.items))
	for i, it := range s.items {
		rows = append(rows, models.AppointmentService{
			ServiceID:   it.ID,
			Position:    i,
			Name:        it.Name,
			DurationMin: int(it.Duration / time.Minute),
			Price:       it.Price,
		})
	}
	return rows
}

// UniqueIDs drops repeated ids while keeping order, for repository lookups.
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
