package report

import (
	"context"
	"errors"
	"time"

	"github.com/pontobank/pontobank/internal/utils"
	"github.com/pontobank/pontobank/pkg/employee"
	"github.com/pontobank/pontobank/pkg/settings"
	"github.com/pontobank/pontobank/pkg/timesheet"
	"github.com/pontobank/pontobank/pkg/timeutils"
)

type Service interface {
	MonthReport(ctx context.Context, employeeID, month string) (MonthReport, error)
}

type ServiceImpl struct {
	timesheetService timesheet.Service
	employeeService  employee.Service
	settingsService  settings.Service
	clock            utils.Clock
}

func NewService(
	timesheetService timesheet.Service,
	employeeService employee.Service,
	settingsService settings.Service,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		timesheetService: timesheetService,
		employeeService:  employeeService,
		settingsService:  settingsService,
		clock:            clock,
	}
}

// MonthReport walks the month's working days up to today and classifies each
// as filled, excused (holiday or vacation) or missing.
func (s *ServiceImpl) MonthReport(ctx context.Context, employeeID, month string) (MonthReport, error) {
	firstDay, err := time.Parse(timeutils.MonthLayout, month)
	if err != nil {
		return MonthReport{}, ErrInvalidMonth
	}

	emp, err := s.employeeService.Get(ctx, employeeID)
	if err != nil {
		return MonthReport{}, err
	}
	cfg, err := s.settingsService.Get(ctx)
	if err != nil {
		return MonthReport{}, err
	}
	entries, err := s.timesheetService.ListMonth(ctx, employeeID, month)
	if err != nil {
		return MonthReport{}, err
	}

	byDate := make(map[string]timesheet.TimeEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	report := MonthReport{
		EmployeeID:   employeeID,
		Month:        month,
		MissingDates: []string{},
	}
	for _, e := range entries {
		report.BalanceMinutes += e.BalanceMinutes
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	if lastDay.After(today) {
		lastDay = today
	}

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		if !emp.IsWorkingDay(day.Weekday()) {
			continue
		}
		date := day.Format(timeutils.DateLayout)
		entry, hasEntry := byDate[date]

		// Holidays and vacations count as working days but are excused.
		report.TotalWorkingDays++
		report.ExpectedMinutes += emp.ExpectedMinutesPerDay

		if cfg.IsHoliday(date) || (hasEntry && entry.Status == timesheet.DayHoliday) {
			continue
		}
		if cfg.IsDateInVacation(employeeID, date) || (hasEntry && entry.Status == timesheet.DayVacation) {
			continue
		}

		if hasEntry {
			report.FilledDays++
			report.WorkedMinutes += entry.WorkedMinutes
		} else {
			report.MissingDates = append(report.MissingDates, date)
		}
	}

	return report, nil
}

var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
