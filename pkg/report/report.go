package report

// MonthReport summarizes one employee's month up to the current day.
// Working days on holiday or vacation still count toward the totals but are
// never reported as missing.
type MonthReport struct {
	EmployeeID       string
	Month            string
	TotalWorkingDays int
	FilledDays       int
	WorkedMinutes    int
	ExpectedMinutes  int
	BalanceMinutes   int
	MissingDates     []string
}
