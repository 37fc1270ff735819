package balance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontobank/pontobank/internal/utils"
	"github.com/pontobank/pontobank/pkg/employee"
	"github.com/pontobank/pontobank/pkg/settings"
)

type transferFixture struct {
	job             *TransferJob
	balanceRepo     *StubRepository
	settingsService settings.Service
	clock           *utils.MockClock
}

func newTransferFixture(t *testing.T, autoTransfer bool) transferFixture {
	t.Helper()
	ctx := context.Background()

	employeeRepo := employee.NewStubRepository()
	require.NoError(t, employeeRepo.Store(ctx, employee.Employee{
		ID:           "emp-1",
		Name:         "Maria Silva",
		ScheduleType: employee.ScheduleFiveByTwo,
	}))

	settingsService := settings.NewService(settings.NewStubRepository())
	if autoTransfer {
		_, err := settingsService.Update(ctx, settings.Settings{
			ToleranceMinutes:    5,
			MaxExtraMinutes:     10,
			AutoTransferEnabled: true,
		})
		require.NoError(t, err)
	}

	balanceRepo := NewStubRepository()
	balanceService := NewService(balanceRepo, employee.NewService(employeeRepo))
	clock := &utils.MockClock{FixedNow: time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)}

	return transferFixture{
		job:             NewTransferJob(balanceService, settingsService, clock, time.Hour),
		balanceRepo:     balanceRepo,
		settingsService: settingsService,
		clock:           clock,
	}
}

func TestTransferJobRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("transfers the previous month when a new month begins", func(t *testing.T) {
		f := newTransferFixture(t, true)
		f.balanceRepo.SetEntries("emp-1", "2025-06", 90)

		// when running on the first of July
		f.job.RunOnce(ctx)

		// then June rolled into July and the run was recorded
		july, err := f.balanceRepo.GetMonth(ctx, "emp-1", "2025-07")
		require.NoError(t, err)
		assert.Equal(t, 90, july.Total())

		cfg, err := f.settingsService.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-06", cfg.LastTransferMonth)
	})

	t.Run("does not apply the same month twice", func(t *testing.T) {
		f := newTransferFixture(t, true)
		f.balanceRepo.SetEntries("emp-1", "2025-06", 90)

		f.job.RunOnce(ctx)

		// a later run in the same month finds the source already zeroed,
		// and the guard skips the transfer entirely
		f.balanceRepo.SetEntries("emp-1", "2025-06", 90)
		f.job.RunOnce(ctx)

		july, err := f.balanceRepo.GetMonth(ctx, "emp-1", "2025-07")
		require.NoError(t, err)
		assert.Equal(t, 90, july.Total())
	})

	t.Run("does nothing when automatic transfer is disabled", func(t *testing.T) {
		f := newTransferFixture(t, false)
		f.balanceRepo.SetEntries("emp-1", "2025-06", 90)

		f.job.RunOnce(ctx)

		july, err := f.balanceRepo.GetMonth(ctx, "emp-1", "2025-07")
		require.NoError(t, err)
		assert.Zero(t, july.Total())
	})

	t.Run("fires again when the clock rolls into the next month", func(t *testing.T) {
		f := newTransferFixture(t, true)
		f.balanceRepo.SetEntries("emp-1", "2025-06", 60)

		f.job.RunOnce(ctx)

		f.balanceRepo.SetEntries("emp-1", "2025-07", 30)
		f.clock.SetNow(time.Date(2025, 8, 1, 3, 0, 0, 0, time.UTC))
		f.job.RunOnce(ctx)

		// June's 60 landed in July, then July's 30+60 moved to August
		august, err := f.balanceRepo.GetMonth(ctx, "emp-1", "2025-08")
		require.NoError(t, err)
		assert.Equal(t, 90, august.Total())

		cfg, err := f.settingsService.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-07", cfg.LastTransferMonth)
	})

	t.Run("year boundary uses december as the previous month", func(t *testing.T) {
		f := newTransferFixture(t, true)
		f.balanceRepo.SetEntries("emp-1", "2025-12", 45)
		f.clock.SetNow(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

		f.job.RunOnce(ctx)

		january, err := f.balanceRepo.GetMonth(ctx, "emp-1", "2026-01")
		require.NoError(t, err)
		assert.Equal(t, 45, january.Total())
	})
}
