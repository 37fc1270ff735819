package timesheet

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Upsert inserts or replaces the entry for its (employeeID, date) key.
	Upsert(ctx context.Context, entry TimeEntry) error
	Get(ctx context.Context, employeeID, date string) (TimeEntry, error)
	GetMonth(ctx context.Context, employeeID, month string) ([]TimeEntry, error)
	Delete(ctx context.Context, employeeID, date string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Upsert(ctx context.Context, entry TimeEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO time_entry (
			employee_id, date, entry_time, lunch_out_time, lunch_in_time, exit_time,
			worked_minutes, balance_minutes, day_status, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			entry_time = excluded.entry_time,
			lunch_out_time = excluded.lunch_out_time,
			lunch_in_time = excluded.lunch_in_time,
			exit_time = excluded.exit_time,
			worked_minutes = excluded.worked_minutes,
			balance_minutes = excluded.balance_minutes,
			day_status = excluded.day_status,
			notes = excluded.notes`

	_, err = tx.ExecContext(ctx, query,
		entry.EmployeeID,
		entry.Date,
		entry.Entry,
		entry.LunchOut,
		entry.LunchIn,
		entry.Exit,
		entry.WorkedMinutes,
		entry.BalanceMinutes,
		string(entry.Status),
		entry.Notes,
	)
	if err != nil {
		err := fmt.Errorf("could not upsert time entry: %w", err)
		log.Error(err)
		return err
	}

	// Breaks are owned by the entry; replace them wholesale.
	_, err = tx.ExecContext(ctx, "DELETE FROM work_break WHERE employee_id = ? AND date = ?",
		entry.EmployeeID, entry.Date)
	if err != nil {
		err := fmt.Errorf("could not clear breaks: %w", err)
		log.Error(err)
		return err
	}

	for _, b := range entry.Breaks {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO work_break (id, employee_id, date, exit_time, return_time, reason) VALUES (?, ?, ?, ?, ?, ?)",
			b.ID, entry.EmployeeID, entry.Date, b.ExitTime, b.ReturnTime, b.Reason)
		if err != nil {
			err := fmt.Errorf("could not store break: %w", err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, employeeID, date string) (TimeEntry, error) {
	query := `SELECT employee_id, date, entry_time, lunch_out_time, lunch_in_time, exit_time,
			worked_minutes, balance_minutes, day_status, notes
		FROM time_entry WHERE employee_id = ? AND date = ?`
	row := r.db.QueryRowContext(ctx, query, employeeID, date)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return TimeEntry{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan time entry: %w", err)
		log.Error(err)
		return TimeEntry{}, err
	}

	entry.Breaks, err = r.loadBreaks(ctx, employeeID, date)
	if err != nil {
		return TimeEntry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) GetMonth(ctx context.Context, employeeID, month string) ([]TimeEntry, error) {
	query := `SELECT employee_id, date, entry_time, lunch_out_time, lunch_in_time, exit_time,
			worked_minutes, balance_minutes, day_status, notes
		FROM time_entry WHERE employee_id = ? AND date LIKE ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, employeeID, month+"-%")
	if err != nil {
		err := fmt.Errorf("could not query time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			err := fmt.Errorf("could not scan time entry: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	for i := range entries {
		entries[i].Breaks, err = r.loadBreaks(ctx, employeeID, entries[i].Date)
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, employeeID, date string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM time_entry WHERE employee_id = ? AND date = ?",
		employeeID, date)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) loadBreaks(ctx context.Context, employeeID, date string) ([]WorkBreak, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, exit_time, return_time, reason FROM work_break WHERE employee_id = ? AND date = ? ORDER BY exit_time",
		employeeID, date)
	if err != nil {
		err := fmt.Errorf("could not query breaks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var breaks []WorkBreak
	for rows.Next() {
		var b WorkBreak
		if err := rows.Scan(&b.ID, &b.ExitTime, &b.ReturnTime, &b.Reason); err != nil {
			err := fmt.Errorf("could not scan break: %w", err)
			log.Error(err)
			return nil, err
		}
		breaks = append(breaks, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return breaks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (TimeEntry, error) {
	var e TimeEntry
	var status string
	if err := row.Scan(
		&e.EmployeeID,
		&e.Date,
		&e.Entry,
		&e.LunchOut,
		&e.LunchIn,
		&e.Exit,
		&e.WorkedMinutes,
		&e.BalanceMinutes,
		&status,
		&e.Notes,
	); err != nil {
		return TimeEntry{}, err
	}
	e.Status = DayStatus(status)
	return e, nil
}
