package main

import (
	"fmt"
	"net/http"

	"github.com/sharpcut/booking-backend-go/internal/config"
	appHTTP "github.com/sharpcut/booking-backend-go/internal/handler/http"
	"github.com/sharpcut/booking-backend-go/internal/pkg/cron"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
	"github.com/sharpcut/booking-backend-go/internal/pkg/jwt"
	"github.com/sharpcut/booking-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/sharpcut/booking-backend-go/internal/service/auth"
	availabilityService "github.com/sharpcut/booking-backend-go/internal/service/availability"
	bookingService "github.com/sharpcut/booking-backend-go/internal/service/booking"
	catalogService "github.com/sharpcut/booking-backend-go/internal/service/catalog"
	employeeService "github.com/sharpcut/booking-backend-go/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	serviceRepo := postgresql.NewServiceRepository(db)
	weeklyRuleRepo := postgresql.NewWeeklyRuleRepository(db)
	dayOverrideRepo := postgresql.NewDayOverrideRepository(db)
	blockRepo := postgresql.NewBlockRepository(db)
	appointmentRepo := postgresql.NewAppointmentRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	loc := cfg.Booking.Location()

	authSvc := serviceAuth.NewAuthService(db, userRepo, clientRepo, jwtService)
	catalogSvc := catalogService.NewCatalogService(serviceRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	availabilitySvc := availabilityService.NewAvailabilityService(
		db,
		loc,
		cfg.Booking.HorizonDays,
		weeklyRuleRepo,
		dayOverrideRepo,
		blockRepo,
		appointmentRepo,
		serviceRepo,
		employeeRepo,
	)
	bookingSvc := bookingService.NewBookingService(
		postgresql.NewTxManager(db),
		loc,
		clientRepo,
		serviceRepo,
		appointmentRepo,
		availabilitySvc,
	)

	scheduler := cron.NewScheduler()
	availabilityJobs := cron.NewAvailabilityJobs(employeeRepo, availabilitySvc, loc, cfg.Booking.HorizonDays)
	availabilityJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	catalogHandler := appHTTP.NewCatalogHandler(catalogSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	availabilityHandler := appHTTP.NewAvailabilityHandler(availabilitySvc, loc)
	bookingHandler := appHTTP.NewBookingHandler(bookingSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		catalogHandler,
		employeeHandler,
		availabilityHandler,
		bookingHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
