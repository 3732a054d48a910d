package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index;not null" json:"barbershop_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `gorm:"not null" json:"duration_min"`
	BufferMin   int             `gorm:"default:0" json:"buffer_min"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Active      bool            `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
