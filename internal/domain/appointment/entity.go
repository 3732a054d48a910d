package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel moves ap to cancelled. It reports false when ap was already
// cancelled and nothing changed.
func Cancel(ap *models.Appointment, now time.Time) (bool, error) {
	if Status(ap.Status) == StatusCancelled {
		return false, nil
	}
	if err := CanCancel(Status(ap.Status)); err != nil {
		return false, err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return true, nil
}

// Complete moves ap to completed. It reports false when ap was already
// completed; callers must not repeat side effects in that case.
func Complete(ap *models.Appointment, now time.Time) (bool, error) {
	if Status(ap.Status) == StatusCompleted {
		return false, nil
	}
	if err := CanComplete(Status(ap.Status)); err != nil {
		return false, err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return true, nil
}
