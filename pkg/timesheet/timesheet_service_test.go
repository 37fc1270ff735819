package timesheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontobank/pontobank/internal/event_bus"
	"github.com/pontobank/pontobank/pkg/employee"
	"github.com/pontobank/pontobank/pkg/settings"
)

func newTestService(t *testing.T) (*ServiceImpl, *StubRepository) {
	t.Helper()

	employeeRepo := employee.NewStubRepository()
	err := employeeRepo.Store(context.Background(), employee.Employee{
		ID:           "emp-1",
		Name:         "Maria Silva",
		ContractType: employee.ContractCLT,
		ScheduleType: employee.ScheduleFiveByTwo,
		WorkSchedule: employee.WorkSchedule{
			Entry:    "08:00",
			LunchOut: "12:00",
			LunchIn:  "13:00",
			Exit:     "17:00",
		},
		ExpectedMinutesPerDay: 480,
	})
	require.NoError(t, err)

	repo := NewStubRepository()
	service := NewService(
		repo,
		employee.NewService(employeeRepo),
		settings.NewService(settings.NewStubRepository()),
		event_bus.NewEventBus(),
	)

	t.Cleanup(repo.Cleanup)
	t.Cleanup(employeeRepo.Cleanup)
	return service, repo
}

func TestServiceUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a normal day and returns the calculation", func(t *testing.T) {
		service, repo := newTestService(t)

		// given
		entry := TimeEntry{
			EmployeeID: "emp-1",
			Date:       "2025-06-02",
			Entry:      "08:00",
			LunchOut:   "12:00",
			LunchIn:    "13:00",
			Exit:       "17:00",
		}

		// when
		stored, evaluation, err := service.Upsert(ctx, entry)

		// then
		require.NoError(t, err)
		assert.Equal(t, CalcOK, evaluation.Status)
		assert.Equal(t, 480, stored.WorkedMinutes)
		assert.Equal(t, 0, stored.BalanceMinutes)
		assert.Equal(t, DayNormal, stored.Status)

		persisted, err := repo.Get(ctx, "emp-1", "2025-06-02")
		require.NoError(t, err)
		assert.Equal(t, 480, persisted.WorkedMinutes)
	})

	t.Run("normalizes loosely typed punches before storing", func(t *testing.T) {
		service, repo := newTestService(t)

		// given punches typed without colons
		entry := TimeEntry{
			EmployeeID: "emp-1",
			Date:       "2025-06-02",
			Entry:      "800",
			LunchOut:   "1200",
			LunchIn:    "1300",
			Exit:       "1700",
		}

		// when
		_, evaluation, err := service.Upsert(ctx, entry)

		// then
		require.NoError(t, err)
		assert.Equal(t, 480, evaluation.WorkedMinutes)

		persisted, err := repo.Get(ctx, "emp-1", "2025-06-02")
		require.NoError(t, err)
		assert.Equal(t, "08:00", persisted.Entry)
		assert.Equal(t, "17:00", persisted.Exit)
	})

	t.Run("rejects overlapping intervals without persisting", func(t *testing.T) {
		service, repo := newTestService(t)

		// given a break overlapping the lunch interval
		entry := TimeEntry{
			EmployeeID: "emp-1",
			Date:       "2025-06-02",
			Entry:      "08:00",
			LunchOut:   "12:00",
			LunchIn:    "13:00",
			Exit:       "17:00",
			Breaks: []WorkBreak{
				{ExitTime: "12:30", ReturnTime: "13:30", Reason: "errand"},
			},
		}

		// when
		_, evaluation, err := service.Upsert(ctx, entry)

		// then
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, CalcOverlappingIntervals, evaluation.Status)

		_, err = repo.Get(ctx, "emp-1", "2025-06-02")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("keeps the previous day when a replacement is invalid", func(t *testing.T) {
		service, repo := newTestService(t)

		// given a stored valid day
		valid := TimeEntry{
			EmployeeID: "emp-1",
			Date:       "2025-06-02",
			Entry:      "08:00",
			LunchOut:   "12:00",
			LunchIn:    "13:00",
			Exit:       "17:00",
		}
		_, _, err := service.Upsert(ctx, valid)
		require.NoError(t, err)

		// when replacing it with an exit-before-entry break
		invalid := valid
		invalid.Breaks = []WorkBreak{{ExitTime: "15:00", ReturnTime: "14:00"}}
		_, _, err = service.Upsert(ctx, invalid)

		// then
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)

		persisted, err := repo.Get(ctx, "emp-1", "2025-06-02")
		require.NoError(t, err)
		assert.Empty(t, persisted.Breaks)
		assert.Equal(t, 480, persisted.WorkedMinutes)
	})

	t.Run("records an absence as a full day debit", func(t *testing.T) {
		service, _ := newTestService(t)

		// given a day with no punches
		entry := TimeEntry{EmployeeID: "emp-1", Date: "2025-06-02"}

		// when
		stored, evaluation, err := service.Upsert(ctx, entry)

		// then
		require.NoError(t, err)
		assert.Equal(t, CalcAbsence, evaluation.Status)
		assert.Equal(t, 0, stored.WorkedMinutes)
		assert.Equal(t, -480, stored.BalanceMinutes)
	})

	t.Run("applies the saturday holiday credit", func(t *testing.T) {
		service, _ := newTestService(t)

		// given 2025-06-07 is a Saturday
		entry := TimeEntry{EmployeeID: "emp-1", Date: "2025-06-07", Status: DayHoliday}

		// when
		stored, _, err := service.Upsert(ctx, entry)

		// then
		require.NoError(t, err)
		assert.Equal(t, 240, stored.BalanceMinutes)
	})

	t.Run("assigns ids to new breaks", func(t *testing.T) {
		service, _ := newTestService(t)

		entry := TimeEntry{
			EmployeeID: "emp-1",
			Date:       "2025-06-02",
			Entry:      "08:00",
			Exit:       "17:00",
			Breaks: []WorkBreak{
				{ExitTime: "10:00", ReturnTime: "10:15", Reason: "coffee"},
			},
		}

		stored, _, err := service.Upsert(ctx, entry)

		require.NoError(t, err)
		require.Len(t, stored.Breaks, 1)
		assert.NotEmpty(t, stored.Breaks[0].ID)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		service, _ := newTestService(t)

		_, _, err := service.Upsert(ctx, TimeEntry{EmployeeID: "emp-1", Date: "02/06/2025"})

		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("fails for an unknown employee", func(t *testing.T) {
		service, _ := newTestService(t)

		_, _, err := service.Upsert(ctx, TimeEntry{EmployeeID: "ghost", Date: "2025-06-02"})

		assert.ErrorIs(t, err, employee.ErrNotFound)
	})
}

func TestServiceUpsertPublishesChange(t *testing.T) {
	ctx := context.Background()

	employeeRepo := employee.NewStubRepository()
	require.NoError(t, employeeRepo.Store(ctx, employee.Employee{
		ID:                    "emp-1",
		Name:                  "Maria Silva",
		ScheduleType:          employee.ScheduleFiveByTwo,
		ExpectedMinutesPerDay: 480,
	}))

	bus := event_bus.NewEventBus()
	var received []event_bus.TimeEntryChanged
	event_bus.SubscribeTyped(bus, event_bus.TimeEntryChangedEvent, func(e event_bus.EventT[event_bus.TimeEntryChanged]) error {
		received = append(received, e.Data)
		return nil
	})

	service := NewService(
		NewStubRepository(),
		employee.NewService(employeeRepo),
		settings.NewService(settings.NewStubRepository()),
		bus,
	)

	// when storing and then deleting a day
	_, _, err := service.Upsert(ctx, TimeEntry{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		Entry:      "08:00",
		Exit:       "17:00",
	})
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, "emp-1", "2025-06-02")
	require.NoError(t, err)
	require.True(t, deleted)

	// then both operations notified subscribers
	require.Len(t, received, 2)
	assert.Equal(t, "emp-1", received[0].EmployeeID)
	assert.Equal(t, "2025-06-02", received[0].Date)
	assert.Equal(t, "2025-06-02", received[1].Date)
}

func TestServicePreview(t *testing.T) {
	ctx := context.Background()

	t.Run("calculates without storing", func(t *testing.T) {
		service, repo := newTestService(t)

		evaluation, err := service.Preview(ctx, TimeEntry{
			EmployeeID: "emp-1",
			Date:       "2025-06-02",
			Entry:      "08:00",
			LunchOut:   "12:00",
			LunchIn:    "13:00",
			Exit:       "16:20",
		})

		require.NoError(t, err)
		assert.Equal(t, 440, evaluation.WorkedMinutes)
		assert.Equal(t, -40, evaluation.BalanceMinutes)

		_, err = repo.Get(ctx, "emp-1", "2025-06-02")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("flattens shortfalls within tolerance", func(t *testing.T) {
		service, _ := newTestService(t)

		// given the default tolerance of 5 minutes
		evaluation, err := service.Preview(ctx, TimeEntry{
			EmployeeID: "emp-1",
			Date:       "2025-06-02",
			Entry:      "08:00",
			LunchOut:   "12:00",
			LunchIn:    "13:00",
			Exit:       "16:57",
		})

		require.NoError(t, err)
		assert.Equal(t, 477, evaluation.WorkedMinutes)
		assert.Equal(t, 0, evaluation.BalanceMinutes)
		assert.True(t, evaluation.Adjusted)
	})
}

func TestServiceGetAndListMonth(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	for _, date := range []string{"2025-06-02", "2025-06-03", "2025-07-01"} {
		_, _, err := service.Upsert(ctx, TimeEntry{
			EmployeeID: "emp-1",
			Date:       date,
			Entry:      "08:00",
			Exit:       "17:00",
		})
		require.NoError(t, err)
	}

	t.Run("get returns a single day", func(t *testing.T) {
		entry, err := service.Get(ctx, "emp-1", "2025-06-03")
		require.NoError(t, err)
		assert.Equal(t, "2025-06-03", entry.Date)
	})

	t.Run("list month filters by month prefix", func(t *testing.T) {
		entries, err := service.ListMonth(ctx, "emp-1", "2025-06")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "2025-06-02", entries[0].Date)
		assert.Equal(t, "2025-06-03", entries[1].Date)
	})

	t.Run("list month rejects malformed months", func(t *testing.T) {
		_, err := service.ListMonth(ctx, "emp-1", "06/2025")
		assert.Error(t, err)
	})

	t.Run("delete reports missing days", func(t *testing.T) {
		deleted, err := service.Delete(ctx, "emp-1", "2025-06-30")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestValidationErrorUnwrapping(t *testing.T) {
	err := error(&ValidationError{Status: CalcInvalidInterval, Message: "break outside the work day"})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "break outside the work day", validationErr.Error())
}
