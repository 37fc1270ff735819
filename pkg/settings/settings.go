package settings

import "errors"

// Settings is the single system-wide configuration record consumed by the
// calculation engine and the transfer job.
type Settings struct {
	CompanyName         string
	ToleranceMinutes    int
	MaxExtraMinutes     int
	AutoTransferEnabled bool
	// LastTransferMonth is the last YYYY-MM whose balance the automatic
	// transfer already moved forward. Guards against double application.
	LastTransferMonth string
	Holidays          []string
	VacationPeriods   []VacationPeriod
}

// VacationPeriod marks an inclusive date range as vacation for one employee.
type VacationPeriod struct {
	ID         string
	EmployeeID string
	StartDate  string
	EndDate    string
}

// Contains reports whether the ISO date falls inside the period. ISO dates
// compare correctly as strings.
func (p VacationPeriod) Contains(date string) bool {
	return p.StartDate <= date && date <= p.EndDate
}

// IsHoliday reports whether the date is registered as a company holiday.
func (s Settings) IsHoliday(date string) bool {
	for _, h := range s.Holidays {
		if h == date {
			return true
		}
	}
	return false
}

// IsDateInVacation reports whether the date falls inside one of the
// employee's vacation periods.
func (s Settings) IsDateInVacation(employeeID, date string) bool {
	for _, p := range s.VacationPeriods {
		if p.EmployeeID == employeeID && p.Contains(date) {
			return true
		}
	}
	return false
}

var (
	ErrNegativeTolerance = errors.New("tolerance minutes must not be negative")
	ErrNegativeMaxExtra  = errors.New("max extra minutes must not be negative")
	ErrInvalidPeriod     = errors.New("vacation period end must not precede start")
)
