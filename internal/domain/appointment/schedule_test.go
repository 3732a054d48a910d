package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestValidateWindow(t *testing.T) {
	assert.NoError(t, ValidateWindow("08:00", "18:00"))
	assert.NoError(t, ValidateWindow("20:00", "24:00"))
	assert.Error(t, ValidateWindow("18:00", "08:00"))
	assert.Error(t, ValidateWindow("08:00", "08:00"))
	assert.Error(t, ValidateWindow("8", "18:00"))
}

func TestValidateWeekly(t *testing.T) {
	assert.NoError(t, ValidateWeekly([]models.WeeklyAvailability{
		{Weekday: 1, StartTime: "08:00", EndTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00", Active: true},
		{Weekday: 0, Active: false},
	}))
	assert.Error(t, ValidateWeekly([]models.WeeklyAvailability{{Weekday: 7, StartTime: "08:00", EndTime: "18:00"}}))
	assert.Error(t, ValidateWeekly([]models.WeeklyAvailability{
		{Weekday: 1, StartTime: "08:00", EndTime: "18:00", LunchStart: "13:00", LunchEnd: "12:00", Active: true},
	}))
}

func TestValidateException(t *testing.T) {
	assert.NoError(t, ValidateException(models.ScheduleException{Date: "2026-03-02", Kind: models.ExceptionBlocked}))
	assert.NoError(t, ValidateException(models.ScheduleException{Date: "2026-03-02", Kind: models.ExceptionExtended}))
	assert.NoError(t, ValidateException(models.ScheduleException{Date: "2026-03-02", Kind: models.ExceptionExtended, StartTime: "18:00", EndTime: "21:00"}))

	err := ValidateException(models.ScheduleException{Date: "02/03/2026", Kind: models.ExceptionBlocked})
	assert.Equal(t, httperr.CodeInvalidDate, httperr.CodeOf(err))

	err = ValidateException(models.ScheduleException{Date: "2026-03-02", Kind: "vacation"})
	assert.Equal(t, httperr.CodeInvalidInput, httperr.CodeOf(err))
}
