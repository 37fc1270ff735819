package settings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontobank/pontobank/internal/test_utils"
)

func insertEmployee(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO employee (id, name) VALUES (?, ?)", id, "Test Employee")
	require.NoError(t, err)
}

func TestRepositoryDefaults(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)

	// the migration seeds the single settings row
	got, err := repo.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, got.ToleranceMinutes)
	assert.Equal(t, 10, got.MaxExtraMinutes)
	assert.False(t, got.AutoTransferEnabled)
	assert.Empty(t, got.LastTransferMonth)
}

func TestRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)

	err := repo.Update(ctx, Settings{
		CompanyName:         "Acme Ltda",
		ToleranceMinutes:    7,
		MaxExtraMinutes:     20,
		AutoTransferEnabled: true,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", got.CompanyName)
	assert.Equal(t, 7, got.ToleranceMinutes)
	assert.Equal(t, 20, got.MaxExtraMinutes)
	assert.True(t, got.AutoTransferEnabled)
}

func TestRepositoryHolidays(t *testing.T) {
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.AddHoliday(ctx, "2025-06-19"))
	require.NoError(t, repo.AddHoliday(ctx, "2025-01-01"))
	// adding the same date twice is a no-op
	require.NoError(t, repo.AddHoliday(ctx, "2025-06-19"))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-01", "2025-06-19"}, got.Holidays)

	removed, err := repo.RemoveHoliday(ctx, "2025-01-01")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveHoliday(ctx, "2025-12-25")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepositoryVacationPeriods(t *testing.T) {
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	insertEmployee(t, db, "emp-1")
	repo := NewRepository(db)

	period := VacationPeriod{
		ID:         "vac-1",
		EmployeeID: "emp-1",
		StartDate:  "2025-07-01",
		EndDate:    "2025-07-15",
	}
	require.NoError(t, repo.AddVacationPeriod(ctx, period))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got.VacationPeriods, 1)
	assert.Equal(t, period, got.VacationPeriods[0])

	removed, err := repo.RemoveVacationPeriod(ctx, "vac-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveVacationPeriod(ctx, "vac-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepositorySetLastTransferMonth(t *testing.T) {
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.SetLastTransferMonth(ctx, "2025-06"))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-06", got.LastTransferMonth)
}
