package routes

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/lock"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	cfg := config.Defaults()
	cfg.Server.JWTSecret = "test-secret"

	r := gin.New()
	RegisterRoutes(r, App{
		DB:     db,
		Config: cfg,
		Booking: ucAppointment.Deps{
			Repo:    infraRepo.NewAppointmentGormRepository(db),
			Locker:  lock.NewKeyedMutex(),
			Metrics: metrics.New(reg, "test"),
			Log:     log,
		},
		AuditLogger: audit.New(db),
		Gatherer:    reg,
		Log:         log,
	})

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, get("/healthz", "").Code)
	assert.Equal(t, http.StatusOK, get("/readyz", "").Code)

	w := get("/api/me/audit-logs", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          f.Barber.ID,
		"barbershopId": f.Shop.ID,
		"role":         "owner",
		"exp":          time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	w = get("/api/me/audit-logs", token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total":0`)

	w = get("/api/me/barbers/"+strconv.FormatUint(uint64(f.Barber.ID), 10)+"/weekly-availability", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	assert.Equal(t, http.StatusNotFound, get("/api/public/nowhere/availability", "").Code)

	w = get(cfg.Metrics.Path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}
