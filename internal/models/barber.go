package models

import "time"

type Barber struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `gorm:"index;not null" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	// BufferMinutes is the turnover time reserved after each appointment
	// when the selected services declare less.
	BufferMinutes int `gorm:"default:5" json:"buffer_minutes"`
	// BookingHorizonDays limits how far ahead clients may book. Zero disables the limit.
	BookingHorizonDays int  `gorm:"default:30" json:"booking_horizon_days"`
	Active             bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
