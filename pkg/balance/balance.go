package balance

import (
	"errors"
	"time"

	"github.com/pontobank/pontobank/pkg/timeutils"
)

// MonthlyBalance is the hour bank position of one employee for one month.
// EntriesMinutes is recomputed wholesale from the month's daily balances;
// AdjustmentMinutes is only ever written by resets and transfers, so a
// recompute never loses them.
type MonthlyBalance struct {
	EmployeeID        string
	Month             string
	EntriesMinutes    int
	AdjustmentMinutes int
}

// Total is the effective balance of the month.
func (b MonthlyBalance) Total() int {
	return b.EntriesMinutes + b.AdjustmentMinutes
}

var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

// NextMonth returns the month following a YYYY-MM month, rolling over years.
func NextMonth(month string) (string, error) {
	t, err := time.Parse(timeutils.MonthLayout, month)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return t.AddDate(0, 1, 0).Format(timeutils.MonthLayout), nil
}
