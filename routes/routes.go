package routes

import (
	"DentalSimple/cache"
	"DentalSimple/config"
	"DentalSimple/controllers"
	"DentalSimple/database"
	"DentalSimple/handlers"
	"DentalSimple/middlewares"
	"DentalSimple/repositories"
	"DentalSimple/services"
	"DentalSimple/utils"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dependencies are the infrastructure pieces the router is built on. Cache is
// optional; without it records are read straight from the backend.
type Dependencies struct {
	Backend  repositories.Backend
	Cache    cache.Cache
	Locker   database.Locker
	Notifier utils.BookingNotifier
}

// SetupRoutes initializes the routes and middleware for the server and
// restores the persisted session.
func SetupRoutes(ctx context.Context, config *config.AppConfig, deps Dependencies) (http.Handler, error) {
	if config.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	sealer, err := utils.NewSessionSealer(config.SessionKey)
	if err != nil {
		return nil, err
	}
	if deps.Locker == nil {
		deps.Locker = database.NewLocalLocker()
	}
	if deps.Notifier == nil {
		deps.Notifier = utils.NewBookingNotifier(config.SMTP)
	}

	var records repositories.RecordStore = deps.Backend
	if deps.Cache != nil {
		records = repositories.NewCachedRecordStore(deps.Backend, deps.Cache)
	}

	sessionService := services.NewSessionService(deps.Backend, deps.Backend, sealer, deps.Locker)
	if err := sessionService.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	metrics := middlewares.NewMetrics()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())
	router.Use(middlewares.LoggingMiddleware())

	router.Use(middlewares.CorsMiddleware(&middlewares.CorsConfig{
		AllowedOrigins:   config.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: config.RateLimitRPS,
		Burst:             config.RateLimitBurst,
	}))

	patientHandler := handlers.NewPatientHandler(services.NewPatientService(records))
	visitHandler := handlers.NewVisitHandler(services.NewVisitService(records))
	appointmentHandler := handlers.NewAppointmentHandler(
		services.NewAppointmentService(records, deps.Notifier),
		services.NewDashboardService(records),
		services.NewCalendarService(records),
	)
	authHandler := handlers.NewAuthHandler(sessionService)

	controllers.SetupRootRoute(router, metrics.Handler())
	controllers.NewAuthController(authHandler).RegisterRoutes(router)

	clinic := router.Group("/", middlewares.RequireSession(sessionService))
	controllers.SetupClinicRoutes(clinic, patientHandler, visitHandler, appointmentHandler)

	return router, nil
}
