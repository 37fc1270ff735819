package balance

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// RecomputeEntries rebuilds entries_minutes for every month of the
	// employee from the stored daily balances, leaving adjustments alone.
	RecomputeEntries(ctx context.Context, employeeID string) error
	GetMonth(ctx context.Context, employeeID, month string) (MonthlyBalance, error)
	GetAll(ctx context.Context, employeeID string) ([]MonthlyBalance, error)
	SetAdjustment(ctx context.Context, employeeID, month string, minutes int) error
	AddAdjustment(ctx context.Context, employeeID, month string, minutes int) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) RecomputeEntries(ctx context.Context, employeeID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO monthly_balance (employee_id, month, entries_minutes)
		SELECT employee_id, substr(date, 1, 7), SUM(balance_minutes)
		FROM time_entry WHERE employee_id = ?
		GROUP BY employee_id, substr(date, 1, 7)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			entries_minutes = excluded.entries_minutes`
	if _, err := tx.ExecContext(ctx, query, employeeID); err != nil {
		err := fmt.Errorf("could not recompute monthly balances: %w", err)
		log.Error(err)
		return err
	}

	// Months whose entries were all deleted keep their adjustment but drop
	// back to zero entry minutes.
	query = `UPDATE monthly_balance SET entries_minutes = 0
		WHERE employee_id = ?
		AND month NOT IN (SELECT substr(date, 1, 7) FROM time_entry WHERE employee_id = ?)`
	if _, err := tx.ExecContext(ctx, query, employeeID, employeeID); err != nil {
		err := fmt.Errorf("could not clear stale monthly balances: %w", err)
		log.Error(err)
		return err
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetMonth(ctx context.Context, employeeID, month string) (MonthlyBalance, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT entries_minutes, adjustment_minutes FROM monthly_balance WHERE employee_id = ? AND month = ?",
		employeeID, month)

	b := MonthlyBalance{EmployeeID: employeeID, Month: month}
	err := row.Scan(&b.EntriesMinutes, &b.AdjustmentMinutes)
	if err == sql.ErrNoRows {
		// A month without a row is simply a zero balance.
		return b, nil
	}
	if err != nil {
		err := fmt.Errorf("could not scan monthly balance: %w", err)
		log.Error(err)
		return MonthlyBalance{}, err
	}
	return b, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, employeeID string) ([]MonthlyBalance, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT month, entries_minutes, adjustment_minutes FROM monthly_balance WHERE employee_id = ? ORDER BY month",
		employeeID)
	if err != nil {
		err := fmt.Errorf("could not query monthly balances: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var balances []MonthlyBalance
	for rows.Next() {
		b := MonthlyBalance{EmployeeID: employeeID}
		if err := rows.Scan(&b.Month, &b.EntriesMinutes, &b.AdjustmentMinutes); err != nil {
			err := fmt.Errorf("could not scan monthly balance: %w", err)
			log.Error(err)
			return nil, err
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return balances, nil
}

func (r *RepositoryImpl) SetAdjustment(ctx context.Context, employeeID, month string, minutes int) error {
	query := `INSERT INTO monthly_balance (employee_id, month, adjustment_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			adjustment_minutes = excluded.adjustment_minutes`
	if _, err := r.db.ExecContext(ctx, query, employeeID, month, minutes); err != nil {
		err := fmt.Errorf("could not set adjustment: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) AddAdjustment(ctx context.Context, employeeID, month string, minutes int) error {
	query := `INSERT INTO monthly_balance (employee_id, month, adjustment_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			adjustment_minutes = monthly_balance.adjustment_minutes + excluded.adjustment_minutes`
	if _, err := r.db.ExecContext(ctx, query, employeeID, month, minutes); err != nil {
		err := fmt.Errorf("could not add adjustment: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
