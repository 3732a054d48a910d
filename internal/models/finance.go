package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinanceTransaction struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index;not null" json:"barbershop_id"`

	// AppointmentID is set for income generated by a completed appointment.
	AppointmentID *uint `gorm:"uniqueIndex" json:"appointment_id"`

	Description   string          `gorm:"size:200" json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Kind          string          `gorm:"size:20" json:"kind"`
	Category      string          `gorm:"size:100" json:"category"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Status        string          `gorm:"size:20" json:"status"`
	PaymentMethod string          `gorm:"size:20" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
}
