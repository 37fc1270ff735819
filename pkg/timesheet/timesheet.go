package timesheet

import "errors"

// DayStatus classifies a day. The exception states are mutually exclusive by
// construction; a day carries exactly one status.
type DayStatus string

const (
	DayNormal       DayStatus = "normal"
	DayHoliday      DayStatus = "holiday"
	DayVacation     DayStatus = "vacation"
	DayMedicalLeave DayStatus = "medical_leave"
)

func (s DayStatus) Valid() bool {
	switch s {
	case DayNormal, DayHoliday, DayVacation, DayMedicalLeave:
		return true
	}
	return false
}

// WorkBreak is an ad hoc absence interval during the work day, beyond lunch.
type WorkBreak struct {
	ID         string
	ExitTime   string
	ReturnTime string
	Reason     string
}

// TimeEntry is the single record for one employee on one day.
// (EmployeeID, Date) is the natural key; Date is YYYY-MM-DD.
type TimeEntry struct {
	EmployeeID     string
	Date           string
	Entry          string
	LunchOut       string
	LunchIn        string
	Exit           string
	Breaks         []WorkBreak
	WorkedMinutes  int
	BalanceMinutes int
	Status         DayStatus
	Notes          string
}

// Month returns the YYYY-MM prefix of the entry's date.
func (e TimeEntry) Month() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

var (
	ErrNotFound    = errors.New("time entry not found")
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)
