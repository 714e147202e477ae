package availability

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/domain/catalog"
	"github.com/sharpcut/booking-backend-go/internal/domain/employee"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
	"github.com/sharpcut/booking-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAvailabilityDB *database.DB

type availabilityTestEnv struct {
	db  *database.DB
	loc *time.Location
	svc availability.AvailabilityService
}

func newAvailabilityTestEnv(t *testing.T) *availabilityTestEnv {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	if testAvailabilityDB == nil {
		var err error
		testAvailabilityDB, err = database.NewPostgreSQLDB(dsn, 0, 0)
		require.NoError(t, err)
	}

	ctx := context.Background()
	tables := []string{"appointments", "availability_blocks", "day_overrides", "weekly_rules", "services", "clients", "users", "employees"}
	for _, table := range tables {
		_, err := testAvailabilityDB.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	svc := NewAvailabilityService(
		testAvailabilityDB, loc, availability.DefaultHorizonDays,
		postgresql.NewWeeklyRuleRepository(testAvailabilityDB),
		postgresql.NewDayOverrideRepository(testAvailabilityDB),
		postgresql.NewBlockRepository(testAvailabilityDB),
		postgresql.NewAppointmentRepository(testAvailabilityDB),
		postgresql.NewServiceRepository(testAvailabilityDB),
		postgresql.NewEmployeeRepository(testAvailabilityDB),
	)

	return &availabilityTestEnv{db: testAvailabilityDB, loc: loc, svc: svc}
}

// createMorningBarber creates an employee working 09:00-12:00 every day.
func (e *availabilityTestEnv) createMorningBarber(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	created, err := postgresql.NewEmployeeRepository(e.db).Create(ctx, employee.Employee{Name: "Morning Barber"})
	require.NoError(t, err)

	rules := make([]availability.WeeklyRuleInput, 0, 7)
	for dow := 0; dow < 7; dow++ {
		rules = append(rules, availability.WeeklyRuleInput{
			DayOfWeek: dow,
			StartTime: "09:00",
			EndTime:   "12:00",
		})
	}
	_, err = e.svc.ReplaceWeeklyRules(ctx, created.ID, availability.ReplaceWeeklyRulesRequest{Rules: rules})
	require.NoError(t, err)
	return created.ID
}

func (e *availabilityTestEnv) createHaircut(t *testing.T) string {
	t.Helper()
	created, err := postgresql.NewServiceRepository(e.db).Create(context.Background(), catalog.Service{
		Name:            "Corte",
		DurationMinutes: 30,
		PriceCents:      5000,
	})
	require.NoError(t, err)
	return created.ID
}

func (e *availabilityTestEnv) futureDate(daysAhead int) string {
	return timeutil.LocalDate(time.Now().AddDate(0, 0, daysAhead), e.loc)
}

func slotStarts(slots []availability.Slot, loc *time.Location) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartAt.In(loc).Format("15:04"))
	}
	return starts
}

func TestAvailabilityService_SlotsFromWeeklyRules(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	ctx := context.Background()

	employeeID := env.createMorningBarber(t)
	serviceID := env.createHaircut(t)

	slots, err := env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       env.futureDate(7),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slotStarts(slots, env.loc))
}

func TestAvailabilityService_LazyMaterializationBeyondEagerRange(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	ctx := context.Background()

	employeeID := env.createMorningBarber(t)
	serviceID := env.createHaircut(t)

	// Beyond the horizon nothing is materialized eagerly; the read does it.
	date := env.futureDate(availability.DefaultHorizonDays + 10)
	slots, err := env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	})
	require.NoError(t, err)
	assert.Len(t, slots, 6)
}

func TestAvailabilityService_OffOverrideClearsDay(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	ctx := context.Background()

	employeeID := env.createMorningBarber(t)
	serviceID := env.createHaircut(t)
	date := env.futureDate(7)

	_, err := env.svc.CreateOverride(ctx, employeeID, availability.CreateOverrideRequest{
		Date: date,
		Type: string(availability.OverrideOff),
	})
	require.NoError(t, err)

	slots, err := env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)

	// Neighboring days keep their weekly schedule.
	slots, err = env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       env.futureDate(8),
	})
	require.NoError(t, err)
	assert.Len(t, slots, 6)
}

func TestAvailabilityService_CustomOverrideReplacesDay(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	ctx := context.Background()

	employeeID := env.createMorningBarber(t)
	serviceID := env.createHaircut(t)
	date := env.futureDate(7)

	_, err := env.svc.CreateOverride(ctx, employeeID, availability.CreateOverrideRequest{
		Date:      date,
		Type:      string(availability.OverrideCustom),
		StartTime: "13:00",
		EndTime:   "15:00",
	})
	require.NoError(t, err)

	slots, err := env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"13:00", "13:30", "14:00", "14:30"}, slotStarts(slots, env.loc))
}

func TestAvailabilityService_DeleteOverrideRestoresWeeklySchedule(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	ctx := context.Background()

	employeeID := env.createMorningBarber(t)
	serviceID := env.createHaircut(t)
	date := env.futureDate(7)

	override, err := env.svc.CreateOverride(ctx, employeeID, availability.CreateOverrideRequest{
		Date: date,
		Type: string(availability.OverrideOff),
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteOverride(ctx, employeeID, override.ID))

	slots, err := env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	})
	require.NoError(t, err)
	assert.Len(t, slots, 6)
}

func TestAvailabilityService_RematerializationIsIdempotent(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	ctx := context.Background()

	employeeID := env.createMorningBarber(t)
	serviceID := env.createHaircut(t)
	date := env.futureDate(7)

	require.NoError(t, env.svc.MaterializeEmployee(ctx, employeeID, date, 1))
	require.NoError(t, env.svc.MaterializeEmployee(ctx, employeeID, date, 1))

	slots, err := env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	})
	require.NoError(t, err)
	assert.Len(t, slots, 6)
}

func TestAvailabilityService_ReplaceWithEmptySetClosesBooking(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	ctx := context.Background()

	employeeID := env.createMorningBarber(t)
	serviceID := env.createHaircut(t)
	date := env.futureDate(7)

	_, err := env.svc.ReplaceWeeklyRules(ctx, employeeID, availability.ReplaceWeeklyRulesRequest{})
	require.NoError(t, err)

	slots, err := env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityService_InactiveServiceRejected(t *testing.T) {
	env := newAvailabilityTestEnv(t)
	ctx := context.Background()

	employeeID := env.createMorningBarber(t)
	serviceID := env.createHaircut(t)

	inactive := false
	_, err := postgresql.NewServiceRepository(env.db).Update(ctx, catalog.UpdateServiceRequest{
		ID:     serviceID,
		Active: &inactive,
	})
	require.NoError(t, err)

	_, err = env.svc.GetSlots(ctx, availability.GetSlotsRequest{
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       env.futureDate(7),
	})
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
}
