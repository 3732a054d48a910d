package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry(), "test")

	m.Booking("created", false)
	m.Booking("created", false)
	m.Booking("SLOT_UNAVAILABLE", false)
	m.Transition("completed", "changed")
	m.NotificationResult("webhook", "failed")
	m.LockWait(3 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues("created", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("SLOT_UNAVAILABLE", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("completed", "changed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("webhook", "failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Booking("created", true)
		m.Transition("cancelled", "noop")
		m.NotificationResult("log", "sent")
		m.LockWait(time.Second)
	})
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry(), "test")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/items/1", "/items/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/items/:id", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}
