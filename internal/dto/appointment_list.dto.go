package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentListDTO struct {
	ID           uint            `json:"id"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       string          `json:"status"`
	Platform     string          `json:"platform"`
	Override     bool            `json:"override"`
	ClientName   string          `json:"client_name"`
	ClientPhone  string          `json:"client_phone"`
	ServiceNames []string        `json:"service_names"`
	Total        decimal.Decimal `json:"total"`
}
