package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *appointment.CreateAppointment
	cancel   *appointment.CancelAppointment
	complete *appointment.CompleteAppointment
	preview  *appointment.GetAvailability
	list     *appointment.ListAppointments
	log      *slog.Logger
}

func NewAppointmentHandler(deps appointment.Deps) *AppointmentHandler {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentHandler{
		create:   appointment.NewCreateAppointment(deps),
		cancel:   appointment.NewCancelAppointment(deps),
		complete: appointment.NewCompleteAppointment(deps),
		preview:  appointment.NewGetAvailability(deps),
		list:     appointment.NewListAppointments(deps.Repo),
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceIDs  []uint `json:"service_ids"`
	CustomerID  *uint  `json:"customer_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`

	// Either start (RFC 3339) or date + time in the barbershop's zone.
	Start *time.Time `json:"start"`
	Date  string     `json:"date"`
	Time  string     `json:"time"`

	Platform string `json:"platform"`
	Override bool   `json:"override"`
}

func (r CreateAppointmentRequest) input(barbershopID uint) appointment.CreateAppointmentInput {
	in := appointment.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     r.BarberID,
		ServiceIDs:   r.ServiceIDs,
		CustomerID:   r.CustomerID,
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		Date:         r.Date,
		Time:         r.Time,
		Platform:     r.Platform,
		Override:     r.Override,
	}
	if r.Start != nil {
		in.Start = *r.Start
	}
	return in
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.log, errInvalidInput)
		return
	}

	in := req.input(middleware.TenantID(c))
	in.ActorID = middleware.UserID(c)

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.TenantID(c), id, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), middleware.TenantID(c), id, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	availability(c, h.preview, h.log)
}

func availability(c *gin.Context, uc *appointment.GetAvailability, log *slog.Logger) {
	barberID, err := barberParam(c)
	if err != nil {
		httperr.Respond(c, log, err)
		return
	}
	serviceIDs, err := parseIDList(c.Query("service_ids"))
	if err != nil {
		httperr.Respond(c, log, err)
		return
	}

	out, err := uc.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		BarbershopID: middleware.TenantID(c),
		BarberID:     barberID,
		ServiceIDs:   serviceIDs,
		Date:         c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, log, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// AGENDA
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, err := barberParam(c)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	items, err := h.list.ByDate(c.Request.Context(), middleware.TenantID(c), barberID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, err := barberParam(c)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.Respond(c, h.log, httperr.ErrValidation(httperr.CodeInvalidDate))
		return
	}

	items, err := h.list.ByMonth(c.Request.Context(), middleware.TenantID(c), barberID, year, month)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}
