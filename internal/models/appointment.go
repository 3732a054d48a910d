package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint  `gorm:"index;not null" json:"barbershop_id"`
	BarberID     uint  `gorm:"index;not null" json:"barber_id"`
	CustomerID   *uint `json:"customer_id"`

	ClientName  string `gorm:"size:200;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	StartTime time.Time `gorm:"index" json:"start_time"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	Platform      string `gorm:"size:20;default:'manual'" json:"platform"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`
	Override      bool   `json:"override"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`
	Slot     *TimeSlot            `gorm:"constraint:OnDelete:CASCADE;" json:"slot,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService keeps the ordered service selection of an appointment
// with the name, duration and price it had when booked.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"-"`
	AppointmentID uint `gorm:"index;not null" json:"-"`
	ServiceID     uint `gorm:"not null" json:"service_id"`
	Position      int  `gorm:"not null" json:"position"`

	Name        string          `gorm:"size:100" json:"name"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
}

// TimeSlot is the reserved span of an appointment. Buffers are not stored.
type TimeSlot struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	AppointmentID uint      `gorm:"uniqueIndex;not null" json:"-"`
	BarberID      uint      `gorm:"index:ix_slot_barber_range,priority:1;not null" json:"-"`
	StartTime     time.Time `gorm:"index:ix_slot_barber_range,priority:2" json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}
