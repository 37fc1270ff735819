package employee

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, employee Employee) error
	Get(ctx context.Context, id string) (Employee, error)
	GetAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const employeeColumns = `id, name, email, phone, department, position, registration_id,
		contract_type, schedule_type, work_days,
		entry_time, lunch_out_time, lunch_in_time, exit_time,
		expected_minutes_per_day, start_date`

func (r *RepositoryImpl) Store(ctx context.Context, employee Employee) error {
	query := `INSERT INTO employee (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		employee.ID,
		employee.Name,
		employee.Email,
		employee.Phone,
		employee.Department,
		employee.Position,
		employee.RegistrationID,
		string(employee.ContractType),
		string(employee.ScheduleType),
		encodeWorkDays(employee.WorkDays),
		employee.WorkSchedule.Entry,
		employee.WorkSchedule.LunchOut,
		employee.WorkSchedule.LunchIn,
		employee.WorkSchedule.Exit,
		employee.ExpectedMinutesPerDay,
		employee.StartDate,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}

	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id string) (Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employee WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	employee, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan employee: %w", err)
		log.Error(err)
		return Employee{}, err
	}
	return employee, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employee ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query employees: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			err := fmt.Errorf("could not scan employee: %w", err)
			log.Error(err)
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return employees, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, employee Employee) (bool, error) {
	query := `UPDATE employee SET
		name = ?, email = ?, phone = ?, department = ?, position = ?, registration_id = ?,
		contract_type = ?, schedule_type = ?, work_days = ?,
		entry_time = ?, lunch_out_time = ?, lunch_in_time = ?, exit_time = ?,
		expected_minutes_per_day = ?, start_date = ?
		WHERE id = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		employee.Name,
		employee.Email,
		employee.Phone,
		employee.Department,
		employee.Position,
		employee.RegistrationID,
		string(employee.ContractType),
		string(employee.ScheduleType),
		encodeWorkDays(employee.WorkDays),
		employee.WorkSchedule.Entry,
		employee.WorkSchedule.LunchOut,
		employee.WorkSchedule.LunchIn,
		employee.WorkSchedule.Exit,
		employee.ExpectedMinutesPerDay,
		employee.StartDate,
		employee.ID,
	)
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

// Delete removes the employee row. Time entries, monthly balances, and
// vacation periods are removed by the schema's ON DELETE CASCADE.
func (r *RepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM employee WHERE id = ?", id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var e Employee
	var contractType, scheduleType, workDays string
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Phone,
		&e.Department,
		&e.Position,
		&e.RegistrationID,
		&contractType,
		&scheduleType,
		&workDays,
		&e.WorkSchedule.Entry,
		&e.WorkSchedule.LunchOut,
		&e.WorkSchedule.LunchIn,
		&e.WorkSchedule.Exit,
		&e.ExpectedMinutesPerDay,
		&e.StartDate,
	); err != nil {
		return Employee{}, err
	}
	e.ContractType = ContractType(contractType)
	e.ScheduleType = ScheduleType(scheduleType)
	e.WorkDays = decodeWorkDays(workDays)
	return e, nil
}

// encodeWorkDays flattens the weekday set to a comma separated list of
// weekday numbers (0 = Sunday), e.g. "1,3,5".
func encodeWorkDays(days WorkDays) string {
	if len(days) == 0 {
		return ""
	}
	var parts []string
	for day := time.Sunday; day <= time.Saturday; day++ {
		if days[day] {
			parts = append(parts, strconv.Itoa(int(day)))
		}
	}
	return strings.Join(parts, ",")
}

func decodeWorkDays(encoded string) WorkDays {
	if encoded == "" {
		return nil
	}
	days := WorkDays{}
	for _, part := range strings.Split(encoded, ",") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			log.Warnf("ignoring malformed work day %q", part)
			continue
		}
		days[time.Weekday(n)] = true
	}
	return days
}
