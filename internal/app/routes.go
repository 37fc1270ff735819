package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Employees
	r.HandleFunc("/api/employee", deps.EmployeeHandler.Create).Methods("POST")
	r.HandleFunc("/api/employee", deps.EmployeeHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Get).Methods("GET")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Delete).Methods("DELETE")

	// Timesheet
	r.HandleFunc("/api/employee/{id}/timesheet", deps.TimesheetHandler.Upsert).Methods("PUT")
	r.HandleFunc("/api/employee/{id}/timesheet/preview", deps.TimesheetHandler.Preview).Methods("POST")
	r.HandleFunc("/api/employee/{id}/timesheet", deps.TimesheetHandler.ListMonth).Queries("month", "{month}").Methods("GET")
	r.HandleFunc("/api/employee/{id}/timesheet/{date}", deps.TimesheetHandler.Get).Methods("GET")
	r.HandleFunc("/api/employee/{id}/timesheet/{date}", deps.TimesheetHandler.Delete).Methods("DELETE")

	// Hour bank balance
	r.HandleFunc("/api/employee/{id}/balance", deps.BalanceHandler.GetAccumulated).Methods("GET")
	r.HandleFunc("/api/employee/{id}/balance/{month}", deps.BalanceHandler.GetMonth).Methods("GET")
	r.HandleFunc("/api/employee/{id}/balance/{month}/reset", deps.BalanceHandler.ResetMonth).Methods("POST")
	r.HandleFunc("/api/employee/{id}/balance/{month}/transfer", deps.BalanceHandler.TransferMonth).Methods("POST")

	// Monthly report
	r.HandleFunc("/api/employee/{id}/report/{month}", deps.ReportHandler.GetMonth).Methods("GET")

	// Settings
	r.HandleFunc("/api/settings", deps.SettingsHandler.Get).Methods("GET")
	r.HandleFunc("/api/settings", deps.SettingsHandler.Update).Methods("PUT")
	r.HandleFunc("/api/settings/holiday", deps.SettingsHandler.AddHoliday).Methods("POST")
	r.HandleFunc("/api/settings/holiday/{date}", deps.SettingsHandler.RemoveHoliday).Methods("DELETE")
	r.HandleFunc("/api/settings/vacation", deps.SettingsHandler.AddVacationPeriod).Methods("POST")
	r.HandleFunc("/api/settings/vacation/{id}", deps.SettingsHandler.RemoveVacationPeriod).Methods("DELETE")
}
