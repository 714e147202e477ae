package booking

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/domain/booking"
	"github.com/sharpcut/booking-backend-go/internal/domain/catalog"
	"github.com/sharpcut/booking-backend-go/internal/domain/client"
	"github.com/sharpcut/booking-backend-go/internal/domain/employee"
	"github.com/sharpcut/booking-backend-go/internal/domain/user"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
	"github.com/sharpcut/booking-backend-go/internal/repository/postgresql"
	availabilityService "github.com/sharpcut/booking-backend-go/internal/service/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testBookingDB *database.DB

// bookingTestEnv wires the full reservation stack against a real database.
type bookingTestEnv struct {
	db              *database.DB
	loc             *time.Location
	bookingSvc      booking.BookingService
	availabilitySvc availability.AvailabilityService
}

func newBookingTestEnv(t *testing.T) *bookingTestEnv {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	if testBookingDB == nil {
		var err error
		testBookingDB, err = database.NewPostgreSQLDB(dsn, 0, 0)
		require.NoError(t, err)
	}

	ctx := context.Background()
	tables := []string{"appointments", "availability_blocks", "day_overrides", "weekly_rules", "services", "clients", "users", "employees"}
	for _, table := range tables {
		_, err := testBookingDB.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	clientRepo := postgresql.NewClientRepository(testBookingDB)
	serviceRepo := postgresql.NewServiceRepository(testBookingDB)
	employeeRepo := postgresql.NewEmployeeRepository(testBookingDB)
	appointmentRepo := postgresql.NewAppointmentRepository(testBookingDB)
	ruleRepo := postgresql.NewWeeklyRuleRepository(testBookingDB)
	overrideRepo := postgresql.NewDayOverrideRepository(testBookingDB)
	blockRepo := postgresql.NewBlockRepository(testBookingDB)

	availabilitySvc := availabilityService.NewAvailabilityService(
		testBookingDB, loc, availability.DefaultHorizonDays,
		ruleRepo, overrideRepo, blockRepo, appointmentRepo, serviceRepo, employeeRepo,
	)
	bookingSvc := NewBookingService(postgresql.NewTxManager(testBookingDB), loc, clientRepo, serviceRepo, appointmentRepo, availabilitySvc)

	return &bookingTestEnv{
		db:              testBookingDB,
		loc:             loc,
		bookingSvc:      bookingSvc,
		availabilitySvc: availabilitySvc,
	}
}

func (e *bookingTestEnv) createClientUser(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	created, err := postgresql.NewUserRepository(e.db).Create(ctx, user.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         user.RoleClient,
	})
	require.NoError(t, err)

	_, err = postgresql.NewClientRepository(e.db).Create(ctx, client.Client{
		UserID: created.ID,
		Name:   "Test Client",
	})
	require.NoError(t, err)
	return created.ID
}

// createEmployee creates a barber working every day of the week 09:00-18:00
// and materializes the horizon.
func (e *bookingTestEnv) createEmployee(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	created, err := postgresql.NewEmployeeRepository(e.db).Create(ctx, employee.Employee{
		Name: "Test Barber",
	})
	require.NoError(t, err)

	rules := make([]availability.WeeklyRuleInput, 0, 7)
	for dow := 0; dow < 7; dow++ {
		rules = append(rules, availability.WeeklyRuleInput{
			DayOfWeek: dow,
			StartTime: "09:00",
			EndTime:   "18:00",
		})
	}
	_, err = e.availabilitySvc.ReplaceWeeklyRules(ctx, created.ID, availability.ReplaceWeeklyRulesRequest{Rules: rules})
	require.NoError(t, err)
	return created.ID
}

func (e *bookingTestEnv) createService(t *testing.T, name string, durationMinutes int) string {
	t.Helper()

	created, err := postgresql.NewServiceRepository(e.db).Create(context.Background(), catalog.Service{
		Name:            name,
		DurationMinutes: durationMinutes,
		PriceCents:      5000,
	})
	require.NoError(t, err)
	return created.ID
}

// bookingDate returns a date one week out, safely inside the horizon.
func (e *bookingTestEnv) bookingDate() string {
	return timeutil.LocalDate(time.Now().AddDate(0, 0, 7), e.loc)
}

func (e *bookingTestEnv) nextBookingDate() string {
	return timeutil.LocalDate(time.Now().AddDate(0, 0, 8), e.loc)
}

func TestBookingService_Reserve_Success(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	userID := env.createClientUser(t, "reserve@example.com")
	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte", 30)

	start := env.bookingDate() + " 10:00"
	result, err := env.bookingSvc.Reserve(ctx, userID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      start,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, string(booking.StatusPending), result.Status)
	assert.Equal(t, start, result.Start)
	assert.Equal(t, env.bookingDate()+" 10:30", result.End)
}

func TestBookingService_Reserve_OutsideWorkingHours(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	userID := env.createClientUser(t, "offgrid@example.com")
	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte", 30)

	_, err := env.bookingSvc.Reserve(ctx, userID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 08:00",
	})
	assert.ErrorIs(t, err, booking.ErrSlotNotAvailable)

	// Off-grid start inside working hours is rejected too.
	_, err = env.bookingSvc.Reserve(ctx, userID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 10:15",
	})
	assert.ErrorIs(t, err, booking.ErrSlotNotAvailable)
}

func TestBookingService_Reserve_DoubleBooking(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	firstUser := env.createClientUser(t, "first@example.com")
	secondUser := env.createClientUser(t, "second@example.com")
	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte", 30)

	req := booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 10:00",
	}

	_, err := env.bookingSvc.Reserve(ctx, firstUser, req)
	require.NoError(t, err)

	_, err = env.bookingSvc.Reserve(ctx, secondUser, req)
	assert.ErrorIs(t, err, booking.ErrSlotNotAvailable)
}

func TestBookingService_Reserve_DailyLimit(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	userID := env.createClientUser(t, "limit@example.com")
	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte", 30)

	first, err := env.bookingSvc.Reserve(ctx, userID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 10:00",
	})
	require.NoError(t, err)

	second := booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 14:00",
	}
	_, err = env.bookingSvc.Reserve(ctx, userID, second)
	assert.ErrorIs(t, err, booking.ErrClientDailyLimit)

	// The limit is per calendar day: the next day is still open.
	_, err = env.bookingSvc.Reserve(ctx, userID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.nextBookingDate() + " 10:00",
	})
	assert.NoError(t, err)

	// Cancelling frees the day.
	require.NoError(t, env.bookingSvc.Cancel(ctx, userID, first.ID))

	_, err = env.bookingSvc.Reserve(ctx, userID, second)
	assert.NoError(t, err)
}

func TestBookingService_Reserve_AdminWithoutProfile(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin, err := postgresql.NewUserRepository(env.db).Create(ctx, user.User{
		Email:        "admin@example.com",
		PasswordHash: string(hashed),
		Role:         user.RoleAdmin,
	})
	require.NoError(t, err)

	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte", 30)

	_, err = env.bookingSvc.Reserve(ctx, admin.ID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 10:00",
	})
	assert.ErrorIs(t, err, booking.ErrClientProfileNotFound)
}

func TestBookingService_Cancel_OnlyOnceAndOnlyOwn(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	owner := env.createClientUser(t, "owner@example.com")
	other := env.createClientUser(t, "other@example.com")
	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte", 30)

	created, err := env.bookingSvc.Reserve(ctx, owner, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 10:00",
	})
	require.NoError(t, err)

	// Another client cannot see or cancel it.
	err = env.bookingSvc.Cancel(ctx, other, created.ID)
	assert.ErrorIs(t, err, booking.ErrAppointmentNotFound)

	require.NoError(t, env.bookingSvc.Cancel(ctx, owner, created.ID))

	err = env.bookingSvc.Cancel(ctx, owner, created.ID)
	assert.ErrorIs(t, err, booking.ErrAppointmentNotCancelable)
}

func TestBookingService_Reschedule(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	userID := env.createClientUser(t, "move@example.com")
	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte e Barba", 60)

	created, err := env.bookingSvc.Reserve(ctx, userID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 10:00",
	})
	require.NoError(t, err)

	// Moving by one step overlaps the appointment's own interval; the
	// self-exclusion makes that legal.
	moved, err := env.bookingSvc.Reschedule(ctx, userID, created.ID, booking.RescheduleRequest{
		Start: env.bookingDate() + " 10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, env.bookingDate()+" 10:30", moved.Start)
	assert.Equal(t, env.bookingDate()+" 11:30", moved.End)

	// Same start: idempotent no-op.
	same, err := env.bookingSvc.Reschedule(ctx, userID, created.ID, booking.RescheduleRequest{
		Start: env.bookingDate() + " 10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, moved.Start, same.Start)
}

func TestBookingService_Reschedule_TargetTaken(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	firstUser := env.createClientUser(t, "hold@example.com")
	secondUser := env.createClientUser(t, "mover@example.com")
	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte", 30)

	_, err := env.bookingSvc.Reserve(ctx, firstUser, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 10:00",
	})
	require.NoError(t, err)

	created, err := env.bookingSvc.Reserve(ctx, secondUser, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 11:00",
	})
	require.NoError(t, err)

	_, err = env.bookingSvc.Reschedule(ctx, secondUser, created.ID, booking.RescheduleRequest{
		Start: env.bookingDate() + " 10:00",
	})
	assert.ErrorIs(t, err, booking.ErrSlotNotAvailable)
}

func TestBookingService_ListMine(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	userID := env.createClientUser(t, "list@example.com")
	otherID := env.createClientUser(t, "noise@example.com")
	employeeID := env.createEmployee(t)
	serviceID := env.createService(t, "Corte", 30)

	_, err := env.bookingSvc.Reserve(ctx, userID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 10:00",
	})
	require.NoError(t, err)
	_, err = env.bookingSvc.Reserve(ctx, otherID, booking.ReserveRequest{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Start:      env.bookingDate() + " 11:00",
	})
	require.NoError(t, err)

	mine, err := env.bookingSvc.ListMine(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, env.bookingDate()+" 10:00", mine[0].Start)
}
