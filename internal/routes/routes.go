package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// App carries the singletons built in main.
type App struct {
	DB          *gorm.DB
	Config      *config.Config
	Booking     ucAppointment.Deps
	AuditLogger *audit.Logger
	Gatherer    prometheus.Gatherer
	Log         *slog.Logger
	ReadyChecks []handlers.ReadyCheck
}

func RegisterRoutes(r *gin.Engine, app App) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(app.Log))
	r.Use(middleware.CORSMiddleware())
	if app.Booking.Metrics != nil {
		r.Use(app.Booking.Metrics.Middleware())
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(app.DB)

	appointmentHandler := handlers.NewAppointmentHandler(app.Booking)
	publicHandler := handlers.NewPublicHandler(app.Booking)
	scheduleHandler := handlers.NewScheduleHandler(
		scheduleRepo,
		app.Booking.Repo,
		app.Booking.Audit,
		app.Log,
	)
	barbershopHandler := handlers.NewBarbershopHandler(app.DB, app.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(app.AuditLogger, app.Log)
	healthHandler := handlers.NewHealthHandler(app.ReadyChecks...)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/healthz", healthHandler.Live)
	r.GET("/readyz", healthHandler.Ready)

	if app.Config.Metrics.Enabled && app.Gatherer != nil {
		r.GET(app.Config.Metrics.Path, gin.WrapH(promhttp.HandlerFor(app.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		publicAPI.Use(middleware.TenantFromSlug(app.Booking.Repo, app.Log))
		{
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(app.Config.Server.JWTSecret))
		{
			secured.GET("/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/availability", appointmentHandler.Availability)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// SCHEDULE
			// ------------------------------
			barbers := secured.Group("/barbers/:barber_id")
			{
				barbers.PATCH("", barbershopHandler.UpdateBarber)
				barbers.GET("/weekly-availability", scheduleHandler.GetWeekly)
				barbers.PUT("/weekly-availability", scheduleHandler.UpdateWeekly)
				barbers.PUT("/daily-availability/:date", scheduleHandler.UpdateDaily)
				barbers.POST("/exceptions", scheduleHandler.CreateException)
				barbers.DELETE("/exceptions/:id", scheduleHandler.DeleteException)
			}

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
