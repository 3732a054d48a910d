package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestBarbershopSettings(t *testing.T) {
	s := newServer(t)
	h := NewBarbershopHandler(s.f.DB, nil)
	me := s.router.Group("/settings", func(c *gin.Context) {
		c.Set(middleware.ContextBarbershopID, s.f.Shop.ID)
		c.Next()
	})
	me.GET("/barbershop", h.GetMeBarbershop)
	me.PATCH("/barbershop", h.UpdateMeBarbershop)
	me.PATCH("/barbers/:barber_id", h.UpdateBarber)

	w := s.do(t, http.MethodGet, "/settings/barbershop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"timezone":"America/Sao_Paulo"`)

	w = s.do(t, http.MethodPatch, "/settings/barbershop", gin.H{"timezone": "Mars/Olympus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/settings/barbershop", gin.H{"timezone": "America/Manaus"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var shop models.Barbershop
	require.NoError(t, s.f.DB.First(&shop, s.f.Shop.ID).Error)
	assert.Equal(t, "America/Manaus", shop.Timezone)
	assert.Equal(t, s.f.Shop.Name, shop.Name)

	path := "/settings/barbers/" + strconv.FormatUint(uint64(s.f.Barber.ID), 10)
	w = s.do(t, http.MethodPatch, path, gin.H{"buffer_minutes": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, path, gin.H{"buffer_minutes": 0, "booking_horizon_days": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var barber models.Barber
	require.NoError(t, s.f.DB.First(&barber, s.f.Barber.ID).Error)
	assert.Zero(t, barber.BufferMinutes)
	assert.Zero(t, barber.BookingHorizonDays)

	w = s.do(t, http.MethodPatch, "/settings/barbers/9999", gin.H{"buffer_minutes": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
