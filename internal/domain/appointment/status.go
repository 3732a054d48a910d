package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Platform
// ===============================

type Platform string

const (
	PlatformManual   Platform = "manual"
	PlatformWhatsApp Platform = "whatsapp"
	PlatformWeb      Platform = "web"
)

// ParsePlatform defaults an empty value to manual.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case "":
		return PlatformManual, nil
	case PlatformManual, PlatformWhatsApp, PlatformWeb:
		return Platform(s), nil
	}
	return "", httperr.ErrValidation(httperr.CodeInvalidPlatform)
}

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// ===============================
// Validations
// ===============================

// CanCancel: pending and confirmed appointments may be cancelled.
func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

// CanComplete: only confirmed appointments may be completed.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// InitialStatus is the status the booking flow writes. There is no
// approval step, so bookings are confirmed right away.
func InitialStatus() Status {
	return StatusConfirmed
}
