package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/lock"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	financeKindIncome      = "income"
	financeCategoryService = "service"
	financeStatusPaid      = "paid"
)

// CompleteAppointment closes a confirmed appointment and, in the same
// transaction, books its income and the customer's loyalty. Repeating it
// on a completed appointment changes nothing.
type CompleteAppointment struct {
	deps Deps
}

func NewCompleteAppointment(deps Deps) *CompleteAppointment {
	return &CompleteAppointment{deps: deps.withDefaults()}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
	actorID *uint,
) (*models.Appointment, error) {

	shop, err := uc.deps.Repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	waitStart := time.Now()
	unlock, err := uc.deps.Locker.Lock(ctx, lock.AppointmentKey(appointmentID))
	if err != nil {
		return nil, err
	}
	defer unlock()
	uc.deps.Metrics.LockWait(time.Since(waitStart))

	var (
		ap      *models.Appointment
		changed bool
		amount  decimal.Decimal
	)
	err = uc.deps.Repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForUpdate(ctx, barbershopID, appointmentID)
		if err != nil {
			return err
		}

		now := uc.deps.Clock.Now()
		changed, err = domain.Complete(ap, now)
		if err != nil || !changed {
			return err
		}
		ap.PaymentStatus = domain.PaymentPaid

		if err := tx.UpdateAppointmentStatus(ctx, ap); err != nil {
			return err
		}

		amount = totalPrice(ap.Services)
		if err := tx.RecordIncome(ctx, &models.FinanceTransaction{
			BarbershopID:  barbershopID,
			AppointmentID: &ap.ID,
			Description:   incomeDescription(ap),
			Amount:        amount,
			Kind:          financeKindIncome,
			Category:      financeCategoryService,
			OccurredAt:    now.UTC(),
			Status:        financeStatusPaid,
			PaymentMethod: uc.deps.Policy.PaymentMethod,
		}); err != nil {
			return fmt.Errorf("record income: %w", err)
		}

		if ap.CustomerID == nil {
			return nil
		}
		visit := now.In(loc).Format(domain.DateLayout)
		if err := tx.AccrueLoyalty(ctx, barbershopID, *ap.CustomerID, amount, visit); err != nil {
			return fmt.Errorf("accrue loyalty: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.deps.Metrics.Transition(string(domain.StatusCompleted), outcomeOf(err))
		return nil, err
	}

	if !changed {
		uc.deps.Metrics.Transition(string(domain.StatusCompleted), "noop")
		return ap, nil
	}

	uc.deps.audit(audit.Event{
		BarbershopID: barbershopID,
		UserID:       actorID,
		Action:       audit.ActionAppointmentCompleted,
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"amount": amount.StringFixed(2)},
	})
	uc.deps.Metrics.Transition(string(domain.StatusCompleted), "changed")
	uc.deps.Log.InfoContext(ctx, "appointment completed",
		"appointment_id", ap.ID,
		"barbershop_id", barbershopID,
		"amount", amount.StringFixed(2),
	)

	return ap, nil
}

func totalPrice(services []models.AppointmentService) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}

func incomeDescription(ap *models.Appointment) string {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("Appointment #%d: %s", ap.ID, strings.Join(names, ", "))
}

func outcomeOf(err error) string {
	if code := httperr.CodeOf(err); code != "" {
		return code
	}
	return "error"
}
