package settings

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) error
	AddHoliday(ctx context.Context, date string) error
	RemoveHoliday(ctx context.Context, date string) (bool, error)
	AddVacationPeriod(ctx context.Context, period VacationPeriod) error
	RemoveVacationPeriod(ctx context.Context, id string) (bool, error)
	SetLastTransferMonth(ctx context.Context, month string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Get(ctx context.Context) (Settings, error) {
	var s Settings
	var autoTransfer int
	row := r.db.QueryRowContext(ctx,
		`SELECT company_name, tolerance_minutes, max_extra_minutes, auto_transfer_enabled, last_transfer_month
		 FROM settings WHERE id = 1`)
	if err := row.Scan(&s.CompanyName, &s.ToleranceMinutes, &s.MaxExtraMinutes, &autoTransfer, &s.LastTransferMonth); err != nil {
		err := fmt.Errorf("could not scan settings: %w", err)
		log.Error(err)
		return Settings{}, err
	}
	s.AutoTransferEnabled = autoTransfer != 0

	holidays, err := r.loadHolidays(ctx)
	if err != nil {
		return Settings{}, err
	}
	s.Holidays = holidays

	periods, err := r.loadVacationPeriods(ctx)
	if err != nil {
		return Settings{}, err
	}
	s.VacationPeriods = periods

	return s, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, settings Settings) error {
	autoTransfer := 0
	if settings.AutoTransferEnabled {
		autoTransfer = 1
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE settings SET company_name = ?, tolerance_minutes = ?, max_extra_minutes = ?, auto_transfer_enabled = ?
		 WHERE id = 1`,
		settings.CompanyName, settings.ToleranceMinutes, settings.MaxExtraMinutes, autoTransfer)
	if err != nil {
		err := fmt.Errorf("could not update settings: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) AddHoliday(ctx context.Context, date string) error {
	_, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO holiday (date) VALUES (?)", date)
	if err != nil {
		err := fmt.Errorf("could not add holiday: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) RemoveHoliday(ctx context.Context, date string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM holiday WHERE date = ?", date)
	if err != nil {
		err := fmt.Errorf("could not remove holiday: %w", err)
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

func (r *RepositoryImpl) AddVacationPeriod(ctx context.Context, period VacationPeriod) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO vacation_period (id, employee_id, start_date, end_date) VALUES (?, ?, ?, ?)",
		period.ID, period.EmployeeID, period.StartDate, period.EndDate)
	if err != nil {
		err := fmt.Errorf("could not add vacation period: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) RemoveVacationPeriod(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM vacation_period WHERE id = ?", id)
	if err != nil {
		err := fmt.Errorf("could not remove vacation period: %w", err)
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

func (r *RepositoryImpl) SetLastTransferMonth(ctx context.Context, month string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE settings SET last_transfer_month = ? WHERE id = 1", month)
	if err != nil {
		err := fmt.Errorf("could not set last transfer month: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) loadHolidays(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT date FROM holiday ORDER BY date")
	if err != nil {
		err := fmt.Errorf("could not query holidays: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var holidays []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			err := fmt.Errorf("could not scan holiday: %w", err)
			log.Error(err)
			return nil, err
		}
		holidays = append(holidays, date)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return holidays, nil
}

func (r *RepositoryImpl) loadVacationPeriods(ctx context.Context) ([]VacationPeriod, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, employee_id, start_date, end_date FROM vacation_period ORDER BY start_date")
	if err != nil {
		err := fmt.Errorf("could not query vacation periods: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var periods []VacationPeriod
	for rows.Next() {
		var p VacationPeriod
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.StartDate, &p.EndDate); err != nil {
			err := fmt.Errorf("could not scan vacation period: %w", err)
			log.Error(err)
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return periods, nil
}
