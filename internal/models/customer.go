package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a client profile shared across barbershops.
type Customer struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerLoyalty holds the per-barbershop spend and points of a customer.
type CustomerLoyalty struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:ux_loyalty_shop_customer,priority:1;not null" json:"barbershop_id"`
	CustomerID   uint `gorm:"uniqueIndex:ux_loyalty_shop_customer,priority:2;not null" json:"customer_id"`

	TotalSpent decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_spent"`
	Points     int64           `gorm:"not null;default:0" json:"points"`
	LastVisit  string          `gorm:"size:10" json:"last_visit"` // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
