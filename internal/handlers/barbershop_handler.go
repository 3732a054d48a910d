package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// BarbershopHandler edits the settings booking rules read: the
// barbershop's zone and each barber's buffer and horizon.
type BarbershopHandler struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewBarbershopHandler(db *gorm.DB, log *slog.Logger) *BarbershopHandler {
	return &BarbershopHandler{db: db, log: log}
}

type UpdateBarbershopRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

type UpdateBarberRequest struct {
	BufferMinutes      *int `json:"buffer_minutes"`
	BookingHorizonDays *int `json:"booking_horizon_days"`
}

func (h *BarbershopHandler) load(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	err := h.db.WithContext(c.Request.Context()).First(&shop, middleware.TenantID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = httperr.ErrNotFound(httperr.CodeBarbershopNotFound)
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.log, errInvalidInput)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.Respond(c, h.log, errInvalidInput)
			return
		}
		shop.Name = name
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.Respond(c, h.log, errInvalidInput)
			return
		}
		shop.Timezone = *req.Timezone
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, shop)
}

// UpdateBarber changes the booking settings of one barber. A horizon of
// zero means unlimited.
func (h *BarbershopHandler) UpdateBarber(c *gin.Context) {
	barberID, err := pathID(c, "barber_id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.log, errInvalidInput)
		return
	}

	updates := map[string]any{}
	if req.BufferMinutes != nil {
		if *req.BufferMinutes < 0 || *req.BufferMinutes > 240 {
			httperr.Respond(c, h.log, errInvalidInput)
			return
		}
		updates["buffer_minutes"] = *req.BufferMinutes
	}
	if req.BookingHorizonDays != nil {
		if *req.BookingHorizonDays < 0 {
			httperr.Respond(c, h.log, errInvalidInput)
			return
		}
		updates["booking_horizon_days"] = *req.BookingHorizonDays
	}

	db := h.db.WithContext(c.Request.Context())

	var barber models.Barber
	if err := db.
		Where("id = ? AND barbershop_id = ?", barberID, middleware.TenantID(c)).
		First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = httperr.ErrNotFound(httperr.CodeBarberNotFound)
		}
		httperr.Respond(c, h.log, err)
		return
	}

	if len(updates) > 0 {
		if err := db.Model(&barber).Updates(updates).Error; err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		if err := db.First(&barber, barber.ID).Error; err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
	}

	httpresp.OK(c, barber)
}
