package httperr

import "errors"

// Kind groups business outcomes by how the caller should react.
type Kind string

const (
	KindValidation Kind = "validation"
	KindBusiness   Kind = "business"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
)

// Stable machine-readable codes.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInvalidDate     = "INVALID_DATE"
	CodeInvalidPlatform = "INVALID_PLATFORM"
	CodeNoServices      = "NO_SERVICES_SELECTED"

	CodeServiceInactive     = "SERVICE_INACTIVE"
	CodeDateInPast          = "DATE_IN_PAST"
	CodeDateBeyondHorizon   = "DATE_BEYOND_HORIZON"
	CodeDateBlocked         = "DATE_BLOCKED"
	CodeNotWorkingDay       = "NOT_WORKING_DAY"
	CodeOutsideWorkingHours = "OUTSIDE_WORKING_HOURS"
	CodeInvalidState        = "INVALID_STATE"

	CodeSlotUnavailable = "SLOT_UNAVAILABLE"

	CodeBarbershopNotFound  = "BARBERSHOP_NOT_FOUND"
	CodeBarberNotFound      = "BARBER_NOT_FOUND"
	CodeServiceNotFound     = "SERVICE_NOT_FOUND"
	CodeAppointmentNotFound = "APPOINTMENT_NOT_FOUND"
	CodeExceptionNotFound   = "EXCEPTION_NOT_FOUND"

	CodeInternal = "INTERNAL_ERROR"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusiness, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "" for
// infrastructure failures.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
