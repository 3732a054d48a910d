package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type BarberFinder interface {
	GetBarber(ctx context.Context, barbershopID uint, barberID uint) (*models.Barber, error)
}

// ScheduleHandler maintains the weekly template, daily overrides and
// exceptions the availability resolver reads.
type ScheduleHandler struct {
	schedule domain.ScheduleRepository
	barbers  BarberFinder
	audit    appointment.Auditor
	log      *slog.Logger
}

func NewScheduleHandler(
	schedule domain.ScheduleRepository,
	barbers BarberFinder,
	auditor appointment.Auditor,
	log *slog.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		schedule: schedule,
		barbers:  barbers,
		audit:    auditor,
		log:      log,
	}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WeeklyUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DailyUpdateRequest struct {
	Windows []TimeWindow `json:"windows"`
}

type ExceptionRequest struct {
	Date      string `json:"date" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// barber resolves :barber_id within the caller's barbershop.
func (h *ScheduleHandler) barber(c *gin.Context) (uint, uint, bool) {
	tenant := middleware.TenantID(c)
	barberID, err := pathID(c, "barber_id")
	if err == nil {
		_, err = h.barbers.GetBarber(c.Request.Context(), tenant, barberID)
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return 0, 0, false
	}
	return tenant, barberID, true
}

func (h *ScheduleHandler) changed(c *gin.Context, tenant, barberID uint, meta map[string]any) {
	if h.audit == nil {
		return
	}
	meta["barber_id"] = barberID
	h.audit.Dispatch(audit.Event{
		BarbershopID: tenant,
		UserID:       middleware.UserID(c),
		Action:       audit.ActionAvailabilityChanged,
		Entity:       "barber",
		EntityID:     &barberID,
		Metadata:     meta,
	})
}

// --------------------------------------------------
// Weekly
// --------------------------------------------------

func (h *ScheduleHandler) GetWeekly(c *gin.Context) {
	tenant, barberID, ok := h.barber(c)
	if !ok {
		return
	}

	rows, err := h.schedule.ListWeekly(c.Request.Context(), tenant, barberID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *ScheduleHandler) UpdateWeekly(c *gin.Context) {
	tenant, barberID, ok := h.barber(c)
	if !ok {
		return
	}

	var req WeeklyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.log, errInvalidInput)
		return
	}

	rows := make([]models.WeeklyAvailability, 0, len(req.Days))
	for _, d := range req.Days {
		rows = append(rows, models.WeeklyAvailability{
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}
	if err := domain.ValidateWeekly(rows); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.schedule.ReplaceWeekly(c.Request.Context(), tenant, barberID, rows); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.changed(c, tenant, barberID, map[string]any{"scope": "weekly", "rows": len(rows)})
	httpresp.OK(c, gin.H{"status": "ok"})
}

// --------------------------------------------------
// Daily
// --------------------------------------------------

// UpdateDaily replaces the windows of one date. An empty list removes the
// override and the weekly template applies again.
func (h *ScheduleHandler) UpdateDaily(c *gin.Context) {
	tenant, barberID, ok := h.barber(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		httperr.Respond(c, h.log, httperr.ErrValidation(httperr.CodeInvalidDate))
		return
	}

	var req DailyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.log, errInvalidInput)
		return
	}

	rows := make([]models.DailyAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		rows = append(rows, models.DailyAvailability{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Active:    true,
		})
	}
	if err := domain.ValidateDaily(rows); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.schedule.ReplaceDaily(c.Request.Context(), tenant, barberID, date, rows); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.changed(c, tenant, barberID, map[string]any{"scope": "daily", "date": date, "rows": len(rows)})
	httpresp.OK(c, gin.H{"status": "ok"})
}

// --------------------------------------------------
// Exceptions
// --------------------------------------------------

func (h *ScheduleHandler) CreateException(c *gin.Context) {
	tenant, barberID, ok := h.barber(c)
	if !ok {
		return
	}

	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.log, errInvalidInput)
		return
	}

	ex := models.ScheduleException{
		BarbershopID: tenant,
		BarberID:     barberID,
		Date:         req.Date,
		Kind:         req.Kind,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Reason:       req.Reason,
	}
	if err := domain.ValidateException(ex); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.schedule.CreateException(c.Request.Context(), &ex); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.changed(c, tenant, barberID, map[string]any{"scope": "exception", "date": ex.Date, "kind": ex.Kind})
	httpresp.Created(c, ex)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	tenant, barberID, ok := h.barber(c)
	if !ok {
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.schedule.DeleteException(c.Request.Context(), tenant, barberID, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.changed(c, tenant, barberID, map[string]any{"scope": "exception", "deleted": id})
	c.Status(http.StatusNoContent)
}
