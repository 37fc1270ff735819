package timesheet

import (
	"fmt"
	"sort"
	"time"

	"github.com/pontobank/pontobank/pkg/timeutils"
)

// CalcStatus is the outcome of interval validation. None of these are errors
// in the Go sense; every input yields a result the caller can surface.
type CalcStatus string

const (
	CalcOK CalcStatus = "ok"
	// CalcAbsence means no entry or exit punch: a recognized state worth a
	// full-day debit, not a validation failure.
	CalcAbsence              CalcStatus = "absence"
	CalcInvalidInterval      CalcStatus = "invalid_interval"
	CalcOverlappingIntervals CalcStatus = "overlapping_intervals"
)

// Fixed holiday effects on the hour bank. Business constants, deliberately
// not derived from the employee's schedule.
const (
	weekdayHolidayDebit   = -50
	saturdayHolidayCredit = 4 * 60
)

type WorkResult struct {
	WorkedMinutes int
	Status        CalcStatus
	Message       string
}

type interval struct {
	start int
	end   int
}

// ComputeWorkedMinutes turns the day's punches into worked minutes.
// The lunch pair and every complete break become absence intervals, which
// must lie within the entry-exit span, have positive length, and not overlap.
func ComputeWorkedMinutes(entry, lunchOut, lunchIn, exit string, breaks []WorkBreak) WorkResult {
	if entry == "" || exit == "" {
		return WorkResult{0, CalcAbsence, "Absence recorded"}
	}

	entryMin := timeutils.ToMinutes(entry)
	exitMin := timeutils.ToMinutes(exit)

	var intervals []interval
	if lunchOut != "" && lunchIn != "" {
		intervals = append(intervals, interval{timeutils.ToMinutes(lunchOut), timeutils.ToMinutes(lunchIn)})
	}
	for _, b := range breaks {
		if b.ExitTime != "" && b.ReturnTime != "" {
			intervals = append(intervals, interval{timeutils.ToMinutes(b.ExitTime), timeutils.ToMinutes(b.ReturnTime)})
		}
	}

	for _, iv := range intervals {
		if iv.start < entryMin || iv.end > exitMin || iv.end <= iv.start {
			return WorkResult{0, CalcInvalidInterval, "Invalid break interval"}
		}
	}

	sort.Slice(intervals, func(i, j int) bool { return intervals[i].start < intervals[j].start })
	for i := 1; i < len(intervals); i++ {
		if intervals[i-1].end > intervals[i].start {
			return WorkResult{0, CalcOverlappingIntervals, "Overlapping break intervals"}
		}
	}

	worked := exitMin - entryMin
	for _, iv := range intervals {
		worked -= iv.end - iv.start
	}

	return WorkResult{worked, CalcOK, "OK"}
}

type BalanceResult struct {
	BalanceMinutes int
	Adjusted       bool
}

// ComputeDailyBalance applies the two-sided dead zone around zero:
// a shortfall within tolerance and a surplus within the extra cap both
// collapse to an exact zero balance; everything else passes through.
func ComputeDailyBalance(workedMinutes, expectedMinutes, toleranceMinutes, maxExtraMinutes int) BalanceResult {
	difference := workedMinutes - expectedMinutes

	if difference >= -toleranceMinutes && difference < 0 {
		return BalanceResult{0, true}
	}

	if difference > 0 && difference <= maxExtraMinutes {
		return BalanceResult{0, true}
	}

	return BalanceResult{difference, false}
}

type ExceptionResult struct {
	WorkedMinutes  int
	BalanceMinutes int
	Message        string
}

// ResolveException returns the fixed effect of a non-normal day status,
// bypassing interval math entirely. It assumes the caller already guarantees
// at most one exception status per day.
func ResolveException(date time.Time, status DayStatus) (ExceptionResult, bool) {
	switch status {
	case DayVacation:
		return ExceptionResult{0, 0, "Vacation: day not counted"}, true
	case DayMedicalLeave:
		return ExceptionResult{0, 0, "Medical leave: day not counted"}, true
	case DayHoliday:
		switch date.Weekday() {
		case time.Saturday:
			return ExceptionResult{0, saturdayHolidayCredit, "Saturday holiday: 4 hour credit"}, true
		case time.Sunday:
			return ExceptionResult{0, 0, "Sunday holiday: no effect"}, true
		default:
			return ExceptionResult{0, weekdayHolidayDebit, "Weekday holiday: 50 minute debit"}, true
		}
	}
	return ExceptionResult{}, false
}

type Evaluation struct {
	WorkedMinutes  int
	BalanceMinutes int
	Status         CalcStatus
	Adjusted       bool
	Message        string
}

// Evaluate runs the full daily pipeline for one entry: exception short
// circuit, absence full-day debit, or interval math plus the balance dead
// zone.
func Evaluate(entry TimeEntry, date time.Time, expectedMinutes, toleranceMinutes, maxExtraMinutes int) Evaluation {
	if result, ok := ResolveException(date, entry.Status); ok {
		return Evaluation{
			WorkedMinutes:  result.WorkedMinutes,
			BalanceMinutes: result.BalanceMinutes,
			Status:         CalcOK,
			Message:        result.Message,
		}
	}

	work := ComputeWorkedMinutes(entry.Entry, entry.LunchOut, entry.LunchIn, entry.Exit, entry.Breaks)

	switch work.Status {
	case CalcAbsence:
		return Evaluation{
			WorkedMinutes:  0,
			BalanceMinutes: -expectedMinutes,
			Status:         CalcAbsence,
			Message:        fmt.Sprintf("Absence recorded: -%s", timeutils.ToTimeString(expectedMinutes)),
		}
	case CalcInvalidInterval, CalcOverlappingIntervals:
		return Evaluation{
			Status:  work.Status,
			Message: work.Message,
		}
	}

	balance := ComputeDailyBalance(work.WorkedMinutes, expectedMinutes, toleranceMinutes, maxExtraMinutes)

	message := "Calculated normally"
	if balance.Adjusted {
		if work.WorkedMinutes < expectedMinutes {
			message = fmt.Sprintf("Delay within tolerance (%d min): no debit", toleranceMinutes)
		} else {
			message = fmt.Sprintf("Extra time within limit (%d min): not banked", maxExtraMinutes)
		}
	}

	return Evaluation{
		WorkedMinutes:  work.WorkedMinutes,
		BalanceMinutes: balance.BalanceMinutes,
		Status:         CalcOK,
		Adjusted:       balance.Adjusted,
		Message:        message,
	}
}
