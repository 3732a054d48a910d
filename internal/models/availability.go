package models

import "time"

// WeeklyAvailability is the recurring template for one weekday.
// Several rows for the same weekday are merged.
type WeeklyAvailability struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index;not null" json:"barbershop_id"`
	BarberID     uint `gorm:"index:ix_weekly_barber_day,priority:1;not null" json:"barber_id"`

	// 0=Sunday ... 6=Saturday
	Weekday int `gorm:"index:ix_weekly_barber_day,priority:2" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"` // HH:MM
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailyAvailability replaces every other source for its date.
type DailyAvailability struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index;not null" json:"barbershop_id"`
	BarberID     uint `gorm:"index:ix_daily_barber_date,priority:1;not null" json:"barber_id"`

	Date      string `gorm:"size:10;index:ix_daily_barber_date,priority:2" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ExceptionBlocked  = "blocked"
	ExceptionExtended = "extended"
)

type ScheduleException struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index;not null" json:"barbershop_id"`
	BarberID     uint `gorm:"index:ix_exception_barber_date,priority:1;not null" json:"barber_id"`

	Date      string `gorm:"size:10;index:ix_exception_barber_date,priority:2" json:"date"`
	Kind      string `gorm:"size:20;not null" json:"kind"`
	StartTime string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string `gorm:"size:5" json:"end_time,omitempty"`
	Reason    string `gorm:"size:200" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
