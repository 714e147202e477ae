package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sharpcut/booking-backend-go/internal/config"
	"github.com/sharpcut/booking-backend-go/internal/handler/http/middleware"
	"github.com/sharpcut/booking-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	catalogHandler CatalogHandler,
	employeeHandler EmployeeHandler,
	availabilityHandler AvailabilityHandler,
	bookingHandler BookingHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sharpcut-booking"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/services", func(r chi.Router) {
				r.Get("/", catalogHandler.ListServices)
				r.Get("/{serviceID}", catalogHandler.GetService)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", catalogHandler.CreateService)
					r.Put("/{serviceID}", catalogHandler.UpdateService)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Get("/{employeeID}", employeeHandler.GetEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.CreateEmployee)
					r.Put("/{employeeID}", employeeHandler.UpdateEmployee)
				})

				// Admin only: schedule management
				r.Route("/{employeeID}/weekly-rules", func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", availabilityHandler.ListWeeklyRules)
					r.Put("/", availabilityHandler.ReplaceWeeklyRules)
				})
				r.Route("/{employeeID}/overrides", func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", availabilityHandler.ListOverrides)
					r.Post("/", availabilityHandler.CreateOverride)
					r.Delete("/{overrideID}", availabilityHandler.DeleteOverride)
				})
			})

			r.Get("/availability/slots", availabilityHandler.GetSlots)

			r.Route("/appointments", func(r chi.Router) {
				r.Post("/", bookingHandler.Reserve)
				r.Get("/", bookingHandler.ListMine)
				r.Post("/{appointmentID}/cancel", bookingHandler.Cancel)
				r.Post("/{appointmentID}/reschedule", bookingHandler.Reschedule)
			})
		})
	})
	return r
}
