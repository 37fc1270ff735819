package event_bus

const (
	// TimeEntryChangedEvent fires after a time entry is inserted, replaced, or deleted.
	TimeEntryChangedEvent EventType = "timesheet.entry.changed"
)

type TimeEntryChanged struct {
	EmployeeID string
	// Date is the entry's day in YYYY-MM-DD format.
	Date string
}
