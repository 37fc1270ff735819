package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an id and derives the daily workload", func(t *testing.T) {
		repo := NewStubRepository()
		service := NewService(repo)

		created, err := service.Create(ctx, Employee{
			Name:         "Maria Silva",
			ContractType: ContractCLT,
			ScheduleType: ScheduleFiveByTwo,
			WorkSchedule: WorkSchedule{Entry: "08:00", LunchOut: "12:00", LunchIn: "13:00", Exit: "17:00"},
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, 480, created.ExpectedMinutesPerDay)

		stored, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("ignores a caller-supplied workload", func(t *testing.T) {
		service := NewService(NewStubRepository())

		created, err := service.Create(ctx, Employee{
			Name:                  "Maria Silva",
			ScheduleType:          ScheduleFiveByTwo,
			WorkSchedule:          WorkSchedule{Entry: "09:00", Exit: "15:00"},
			ExpectedMinutesPerDay: 999,
		})

		require.NoError(t, err)
		assert.Equal(t, 360, created.ExpectedMinutesPerDay)
	})

	t.Run("rejects invalid employees", func(t *testing.T) {
		service := NewService(NewStubRepository())

		_, err := service.Create(ctx, Employee{ScheduleType: ScheduleFiveByTwo})

		assert.ErrorIs(t, err, ErrMissingName)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("re-derives the workload from the new schedule", func(t *testing.T) {
		repo := NewStubRepository()
		service := NewService(repo)

		created, err := service.Create(ctx, Employee{
			Name:         "Maria Silva",
			ScheduleType: ScheduleFiveByTwo,
			WorkSchedule: WorkSchedule{Entry: "08:00", LunchOut: "12:00", LunchIn: "13:00", Exit: "17:00"},
		})
		require.NoError(t, err)

		created.WorkSchedule.Exit = "18:00"
		updated, err := service.Update(ctx, created)

		require.NoError(t, err)
		assert.Equal(t, 540, updated.ExpectedMinutesPerDay)
	})

	t.Run("reports missing employees", func(t *testing.T) {
		service := NewService(NewStubRepository())

		_, err := service.Update(ctx, Employee{
			ID:           "ghost",
			Name:         "Nobody",
			ScheduleType: ScheduleFiveByTwo,
		})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStubRepository()
	service := NewService(repo)

	created, err := service.Create(ctx, Employee{
		Name:         "Maria Silva",
		ScheduleType: ScheduleFiveByTwo,
	})
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
