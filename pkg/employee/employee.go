package employee

import (
	"errors"
	"time"

	"github.com/pontobank/pontobank/pkg/timeutils"
)

type ContractType string

const (
	ContractCLT ContractType = "CLT"
	ContractPJ  ContractType = "PJ"
)

type ScheduleType string

const (
	// ScheduleFiveByTwo works Monday through Friday.
	ScheduleFiveByTwo ScheduleType = "5x2"
	// ScheduleSixByOne works every day except Sunday.
	ScheduleSixByOne ScheduleType = "6x1"
	// ScheduleCustom works the days listed in Employee.WorkDays.
	ScheduleCustom ScheduleType = "custom"
)

// WorkDays marks which weekdays are working days for a custom schedule.
type WorkDays map[time.Weekday]bool

// WorkSchedule holds the canonical daily punches, as HH:MM strings.
type WorkSchedule struct {
	Entry    string
	LunchOut string
	LunchIn  string
	Exit     string
}

// ExpectedMinutes derives the daily workload from the schedule: the
// entry-to-exit span minus the lunch window. An incomplete schedule yields 0.
func (ws WorkSchedule) ExpectedMinutes() int {
	if ws.Entry == "" || ws.Exit == "" {
		return 0
	}
	total := timeutils.ToMinutes(ws.Exit) - timeutils.ToMinutes(ws.Entry)
	if ws.LunchOut != "" && ws.LunchIn != "" {
		total -= timeutils.ToMinutes(ws.LunchIn) - timeutils.ToMinutes(ws.LunchOut)
	}
	if total < 0 {
		return 0
	}
	return total
}

type Employee struct {
	ID                    string
	Name                  string
	Email                 string
	Phone                 string
	Department            string
	Position              string
	RegistrationID        string
	ContractType          ContractType
	ScheduleType          ScheduleType
	WorkDays              WorkDays
	WorkSchedule          WorkSchedule
	ExpectedMinutesPerDay int
	StartDate             string
}

var (
	ErrNotFound         = errors.New("employee not found")
	ErrMissingName      = errors.New("employee name is required")
	ErrMissingWorkDays  = errors.New("custom schedule requires work days")
	ErrInvalidSchedule  = errors.New("unknown schedule type")
	ErrNegativeWorkload = errors.New("expected minutes per day must not be negative")
)

// Validate checks the structural invariants of an employee record.
func (e Employee) Validate() error {
	if e.Name == "" {
		return ErrMissingName
	}
	switch e.ScheduleType {
	case ScheduleFiveByTwo, ScheduleSixByOne:
	case ScheduleCustom:
		if len(e.WorkDays) == 0 {
			return ErrMissingWorkDays
		}
	default:
		return ErrInvalidSchedule
	}
	if e.ExpectedMinutesPerDay < 0 {
		return ErrNegativeWorkload
	}
	return nil
}

// IsWorkingDay reports whether the given weekday is a working day under the
// employee's schedule. This is the single dispatch point for the three
// schedule variants.
func (e Employee) IsWorkingDay(day time.Weekday) bool {
	switch e.ScheduleType {
	case ScheduleFiveByTwo:
		return day >= time.Monday && day <= time.Friday
	case ScheduleSixByOne:
		return day != time.Sunday
	case ScheduleCustom:
		return e.WorkDays[day]
	}
	return false
}
