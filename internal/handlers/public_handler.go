package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucappointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the booking page of a barbershop. The tenant comes
// from the :slug path parameter.
type PublicHandler struct {
	create  *ucappointment.CreateAppointment
	preview *ucappointment.GetAvailability
	log     *slog.Logger
}

func NewPublicHandler(deps ucappointment.Deps) *PublicHandler {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &PublicHandler{
		create:  ucappointment.NewCreateAppointment(deps),
		preview: ucappointment.NewGetAvailability(deps),
		log:     log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceIDs  []uint `json:"service_ids"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	if c.Query("barber_id") == "" {
		httperr.Respond(c, h.log, errInvalidInput)
		return
	}
	availability(c, h.preview, h.log)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.log, errInvalidInput)
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		ucappointment.CreateAppointmentInput{
			BarbershopID: middleware.TenantID(c),
			BarberID:     req.BarberID,
			ServiceIDs:   req.ServiceIDs,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			Date:         req.Date,
			Time:         req.Time,
			Platform:     string(appointment.PlatformWeb),
			Override:     false,
		},
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, gin.H{
		"id":         ap.ID,
		"status":     ap.Status,
		"start_time": ap.StartTime,
		"services":   ap.Services,
	})
}
