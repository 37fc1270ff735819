package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/pontobank/pontobank/internal/event_bus"
	"github.com/pontobank/pontobank/pkg/employee"
	"github.com/pontobank/pontobank/pkg/settings"
	"github.com/pontobank/pontobank/pkg/timeutils"
)

// ValidationError marks entries rejected by interval validation. Such entries
// are never persisted.
type ValidationError struct {
	Status  CalcStatus
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Service interface {
	Upsert(ctx context.Context, entry TimeEntry) (TimeEntry, Evaluation, error)
	Preview(ctx context.Context, entry TimeEntry) (Evaluation, error)
	Get(ctx context.Context, employeeID, date string) (TimeEntry, error)
	ListMonth(ctx context.Context, employeeID, month string) ([]TimeEntry, error)
	Delete(ctx context.Context, employeeID, date string) (bool, error)
}

type ServiceImpl struct {
	repo            Repository
	employeeService employee.Service
	settingsService settings.Service
	bus             *event_bus.EventBus
}

func NewService(
	repo Repository,
	employeeService employee.Service,
	settingsService settings.Service,
	bus *event_bus.EventBus,
) *ServiceImpl {
	return &ServiceImpl{
		repo:            repo,
		employeeService: employeeService,
		settingsService: settingsService,
		bus:             bus,
	}
}

// Upsert validates, evaluates and stores the entry for its (employee, date)
// key, replacing any previous record for that day. Entries with invalid or
// overlapping intervals are rejected and leave the stored day untouched.
func (s *ServiceImpl) Upsert(ctx context.Context, entry TimeEntry) (TimeEntry, Evaluation, error) {
	entry, date, err := s.prepare(entry)
	if err != nil {
		return TimeEntry{}, Evaluation{}, err
	}

	evaluation, err := s.evaluate(ctx, entry, date)
	if err != nil {
		return TimeEntry{}, Evaluation{}, err
	}
	if evaluation.Status == CalcInvalidInterval || evaluation.Status == CalcOverlappingIntervals {
		return TimeEntry{}, evaluation, &ValidationError{Status: evaluation.Status, Message: evaluation.Message}
	}

	entry.WorkedMinutes = evaluation.WorkedMinutes
	entry.BalanceMinutes = evaluation.BalanceMinutes
	for i := range entry.Breaks {
		if entry.Breaks[i].ID == "" {
			entry.Breaks[i].ID = uuid.NewString()
		}
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return TimeEntry{}, Evaluation{}, err
	}

	s.publishChange(ctx, entry.EmployeeID, entry.Date)
	return entry, evaluation, nil
}

// Preview runs the same validation and calculation as Upsert without storing
// anything.
func (s *ServiceImpl) Preview(ctx context.Context, entry TimeEntry) (Evaluation, error) {
	entry, date, err := s.prepare(entry)
	if err != nil {
		return Evaluation{}, err
	}
	return s.evaluate(ctx, entry, date)
}

func (s *ServiceImpl) Get(ctx context.Context, employeeID, date string) (TimeEntry, error) {
	if !timeutils.IsValidDate(date) {
		return TimeEntry{}, ErrInvalidDate
	}
	return s.repo.Get(ctx, employeeID, date)
}

func (s *ServiceImpl) ListMonth(ctx context.Context, employeeID, month string) ([]TimeEntry, error) {
	if !timeutils.IsValidMonth(month) {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return s.repo.GetMonth(ctx, employeeID, month)
}

func (s *ServiceImpl) Delete(ctx context.Context, employeeID, date string) (bool, error) {
	if !timeutils.IsValidDate(date) {
		return false, ErrInvalidDate
	}
	deleted, err := s.repo.Delete(ctx, employeeID, date)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publishChange(ctx, employeeID, date)
	}
	return deleted, nil
}

func (s *ServiceImpl) prepare(entry TimeEntry) (TimeEntry, time.Time, error) {
	date, err := time.Parse(timeutils.DateLayout, entry.Date)
	if err != nil {
		return TimeEntry{}, time.Time{}, ErrInvalidDate
	}
	if entry.Status == "" {
		entry.Status = DayNormal
	}
	if !entry.Status.Valid() {
		return TimeEntry{}, time.Time{}, fmt.Errorf("unknown day status %q", entry.Status)
	}

	entry.Entry = timeutils.NormalizeTime(entry.Entry)
	entry.LunchOut = timeutils.NormalizeTime(entry.LunchOut)
	entry.LunchIn = timeutils.NormalizeTime(entry.LunchIn)
	entry.Exit = timeutils.NormalizeTime(entry.Exit)
	for i := range entry.Breaks {
		entry.Breaks[i].ExitTime = timeutils.NormalizeTime(entry.Breaks[i].ExitTime)
		entry.Breaks[i].ReturnTime = timeutils.NormalizeTime(entry.Breaks[i].ReturnTime)
	}

	for _, punch := range []string{entry.Entry, entry.LunchOut, entry.LunchIn, entry.Exit} {
		if punch != "" && !timeutils.IsValidTime(punch) {
			return TimeEntry{}, time.Time{}, &ValidationError{
				Status:  CalcInvalidInterval,
				Message: fmt.Sprintf("invalid time %q, expected HH:MM", punch),
			}
		}
	}
	for _, b := range entry.Breaks {
		for _, punch := range []string{b.ExitTime, b.ReturnTime} {
			if punch != "" && !timeutils.IsValidTime(punch) {
				return TimeEntry{}, time.Time{}, &ValidationError{
					Status:  CalcInvalidInterval,
					Message: fmt.Sprintf("invalid break time %q, expected HH:MM", punch),
				}
			}
		}
	}

	return entry, date, nil
}

func (s *ServiceImpl) evaluate(ctx context.Context, entry TimeEntry, date time.Time) (Evaluation, error) {
	emp, err := s.employeeService.Get(ctx, entry.EmployeeID)
	if err != nil {
		return Evaluation{}, err
	}
	cfg, err := s.settingsService.Get(ctx)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluate(entry, date, emp.ExpectedMinutesPerDay, cfg.ToleranceMinutes, cfg.MaxExtraMinutes), nil
}

func (s *ServiceImpl) publishChange(ctx context.Context, employeeID, date string) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TimeEntryChangedEvent, event_bus.TimeEntryChanged{
		EmployeeID: employeeID,
		Date:       date,
	}))
	if err != nil {
		log.Errorf("time entry change listeners failed: %v", err)
	}
}
