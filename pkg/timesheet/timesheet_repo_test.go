package timesheet

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

func TestRepositoryUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts and reads back an entry with breaks", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		insertEmployee(t, db, "emp-1")
		repo := NewRepository(db)

		// given
		entry := TimeEntry{
			EmployeeID:     "emp-1",
			Date:           "2025-06-02",
			Entry:          "08:00",
			LunchOut:       "12:00",
			LunchIn:        "13:00",
			Exit:           "17:00",
			WorkedMinutes:  480,
			BalanceMinutes: 0,
			Status:         DayNormal,
			Notes:          "regular day",
			Breaks: []WorkBreak{
				{ID: "brk-1", ExitTime: "10:00", ReturnTime: "10:15", Reason: "coffee"},
			},
		}

		// when
		require.NoError(t, repo.Upsert(ctx, entry))

		// then
		got, err := repo.Get(ctx, "emp-1", "2025-06-02")
		require.NoError(t, err)
		assert.Equal(t, entry.Entry, got.Entry)
		assert.Equal(t, entry.WorkedMinutes, got.WorkedMinutes)
		assert.Equal(t, entry.Notes, got.Notes)
		require.Len(t, got.Breaks, 1)
		assert.Equal(t, "coffee", got.Breaks[0].Reason)
	})

	t.Run("replaces the entry and its breaks on conflict", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		insertEmployee(t, db, "emp-1")
		repo := NewRepository(db)

		// given a stored day with one break
		first := TimeEntry{
			EmployeeID: "emp-1",
			Date:       "2025-06-02",
			Entry:      "08:00",
			Exit:       "17:00",
			Status:     DayNormal,
			Breaks:     []WorkBreak{{ID: "brk-1", ExitTime: "10:00", ReturnTime: "10:15"}},
		}
		require.NoError(t, repo.Upsert(ctx, first))

		// when replacing it with different punches and no breaks
		second := TimeEntry{
			EmployeeID:     "emp-1",
			Date:           "2025-06-02",
			Entry:          "09:00",
			Exit:           "18:00",
			WorkedMinutes:  540,
			BalanceMinutes: 60,
			Status:         DayNormal,
		}
		require.NoError(t, repo.Upsert(ctx, second))

		// then the old break is gone
		got, err := repo.Get(ctx, "emp-1", "2025-06-02")
		require.NoError(t, err)
		assert.Equal(t, "09:00", got.Entry)
		assert.Empty(t, got.Breaks)
	})

	t.Run("rejects entries for unknown employees", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		repo := NewRepository(db)

		err := repo.Upsert(ctx, TimeEntry{EmployeeID: "ghost", Date: "2025-06-02", Status: DayNormal})

		assert.Error(t, err)
	})
}

func TestRepositoryGetMonth(t *testing.T) {
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	insertEmployee(t, db, "emp-1")
	insertEmployee(t, db, "emp-2")
	repo := NewRepository(db)

	entries := []TimeEntry{
		{EmployeeID: "emp-1", Date: "2025-06-03", Status: DayNormal},
		{EmployeeID: "emp-1", Date: "2025-06-02", Status: DayNormal},
		{EmployeeID: "emp-1", Date: "2025-07-01", Status: DayNormal},
		{EmployeeID: "emp-2", Date: "2025-06-02", Status: DayNormal},
	}
	for _, e := range entries {
		require.NoError(t, repo.Upsert(ctx, e))
	}

	// when
	got, err := repo.GetMonth(ctx, "emp-1", "2025-06")

	// then only the employee's June days come back, ordered by date
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-06-02", got[0].Date)
	assert.Equal(t, "2025-06-03", got[1].Date)
}

func TestRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	insertEmployee(t, db, "emp-1")
	repo := NewRepository(db)

	entry := TimeEntry{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		Status:     DayNormal,
		Breaks:     []WorkBreak{{ID: "brk-1", ExitTime: "10:00", ReturnTime: "10:15"}},
	}
	require.NoError(t, repo.Upsert(ctx, entry))

	// when
	deleted, err := repo.Delete(ctx, "emp-1", "2025-06-02")
	require.NoError(t, err)
	assert.True(t, deleted)

	// then the entry and its breaks are gone
	_, err = repo.Get(ctx, "emp-1", "2025-06-02")
	assert.ErrorIs(t, err, ErrNotFound)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM work_break WHERE employee_id = 'emp-1'").Scan(&count))
	assert.Zero(t, count)

	// deleting again reports nothing removed
	deleted, err = repo.Delete(ctx, "emp-1", "2025-06-02")
	require.NoError(t, err)
	assert.False(t, deleted)
}
