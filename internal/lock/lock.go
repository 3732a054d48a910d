// Package lock serializes work on a single barber or appointment.
package lock

import (
	"context"
	"fmt"
)

// Locker hands out exclusive access per key. The returned func releases
// the lock and is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func BarberKey(barbershopID, barberID uint) string {
	return fmt.Sprintf("barber:%d:%d", barbershopID, barberID)
}

func AppointmentKey(appointmentID uint) string {
	return fmt.Sprintf("appointment:%d", appointmentID)
}
