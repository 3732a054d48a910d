package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var refDay = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// ValidateWindow checks an "HH:MM" pair with start before end.
func ValidateWindow(start, end string) error {
	if _, ok := clockInterval(refDay, start, end); !ok {
		return httperr.ErrValidation(httperr.CodeInvalidInput)
	}
	return nil
}

func ValidateWeekly(rows []models.WeeklyAvailability) error {
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			return httperr.ErrValidation(httperr.CodeInvalidInput)
		}
		if !row.Active && row.StartTime == "" && row.EndTime == "" {
			continue
		}
		if err := ValidateWindow(row.StartTime, row.EndTime); err != nil {
			return err
		}
		if row.LunchStart == "" && row.LunchEnd == "" {
			continue
		}
		if err := ValidateWindow(row.LunchStart, row.LunchEnd); err != nil {
			return err
		}
	}
	return nil
}

func ValidateDaily(rows []models.DailyAvailability) error {
	for _, row := range rows {
		if err := ValidateWindow(row.StartTime, row.EndTime); err != nil {
			return err
		}
	}
	return nil
}

// ValidateException accepts blocked days and extended windows. An
// extended exception without both times is stored but never applied.
func ValidateException(ex models.ScheduleException) error {
	if _, err := time.Parse(DateLayout, ex.Date); err != nil {
		return httperr.ErrValidation(httperr.CodeInvalidDate)
	}
	switch ex.Kind {
	case models.ExceptionBlocked:
		return nil
	case models.ExceptionExtended:
		if ex.StartTime == "" || ex.EndTime == "" {
			return nil
		}
		return ValidateWindow(ex.StartTime, ex.EndTime)
	}
	return httperr.ErrValidation(httperr.CodeInvalidInput)
}
