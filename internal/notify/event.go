// Package notify delivers booking events to messaging systems outside
// the request path.
package notify

import (
	"strconv"
	"time"
)

const EventAppointmentCreated = "appointment_created"

type Event struct {
	Event          string   `json:"event"`
	AppointmentID  uint     `json:"appointmentId"`
	BarbershopName string   `json:"barbershopName"`
	ClientName     string   `json:"clientName"`
	ClientPhone    string   `json:"clientPhone"`
	ServiceNames   []string `json:"serviceNames"`
	Date           string   `json:"date"`            // YYYY-MM-DD
	Time           string   `json:"time"`            // HH:MM
	DateTime       string   `json:"datetimeISO8601"` // RFC 3339 with offset
	Timezone       string   `json:"timezone"`
}

type AppointmentCreated struct {
	AppointmentID  uint
	BarbershopName string
	ClientName     string
	ClientPhone    string
	ServiceNames   []string
	Start          time.Time
	Timezone       string
}

// NewAppointmentCreated renders the start in loc, the barbershop's zone.
func NewAppointmentCreated(in AppointmentCreated, loc *time.Location) Event {
	local := in.Start.In(loc)
	return Event{
		Event:          EventAppointmentCreated,
		AppointmentID:  in.AppointmentID,
		BarbershopName: in.BarbershopName,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		ServiceNames:   in.ServiceNames,
		Date:           local.Format("2006-01-02"),
		Time:           local.Format("15:04"),
		DateTime:       local.Format(time.RFC3339),
		Timezone:       in.Timezone,
	}
}

func (e Event) Key() string {
	return strconv.FormatUint(uint64(e.AppointmentID), 10)
}
