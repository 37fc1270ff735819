package app

import (
	"database/sql"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pontobank/pontobank/internal/config"
	"github.com/pontobank/pontobank/internal/event_bus"
	"github.com/pontobank/pontobank/internal/utils"
	"github.com/pontobank/pontobank/pkg/balance"
	"github.com/pontobank/pontobank/pkg/employee"
	"github.com/pontobank/pontobank/pkg/report"
	"github.com/pontobank/pontobank/pkg/settings"
	"github.com/pontobank/pontobank/pkg/timesheet"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	EmployeeRepo    employee.Repository
	EmployeeService employee.Service
	EmployeeHandler *employee.Handler

	SettingsRepo    settings.Repository
	SettingsService settings.Service
	SettingsHandler *settings.Handler

	TimesheetRepo    timesheet.Repository
	TimesheetService timesheet.Service
	TimesheetHandler *timesheet.Handler

	BalanceRepo    balance.Repository
	BalanceService balance.Service
	BalanceHandler *balance.Handler
	TransferJob    *balance.TransferJob

	ReportService report.Service
	ReportHandler *report.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	deps.EmployeeRepo = employee.NewRepository(db)
	deps.EmployeeService = employee.NewService(deps.EmployeeRepo)
	deps.EmployeeHandler = employee.NewHandler(deps.EmployeeService)

	deps.SettingsRepo = settings.NewRepository(db)
	deps.SettingsService = settings.NewService(deps.SettingsRepo)
	deps.SettingsHandler = settings.NewHandler(deps.SettingsService)

	deps.TimesheetRepo = timesheet.NewRepository(db)
	deps.TimesheetService = timesheet.NewService(deps.TimesheetRepo, deps.EmployeeService, deps.SettingsService, deps.EventBus)
	deps.TimesheetHandler = timesheet.NewHandler(deps.TimesheetService)

	deps.BalanceRepo = balance.NewRepository(db)
	deps.BalanceService = balance.NewService(deps.BalanceRepo, deps.EmployeeService)
	deps.BalanceHandler = balance.NewHandler(deps.BalanceService)
	deps.TransferJob = balance.NewTransferJob(
		deps.BalanceService,
		deps.SettingsService,
		deps.Clock,
		time.Duration(cfg.Transfer.CheckIntervalMinutes)*time.Minute,
	)

	deps.ReportService = report.NewService(deps.TimesheetService, deps.EmployeeService, deps.SettingsService, deps.Clock)
	deps.ReportHandler = report.NewHandler(deps.ReportService)

	// Every change to a day's entry refreshes the employee's monthly totals.
	event_bus.SubscribeTyped(deps.EventBus, event_bus.TimeEntryChangedEvent,
		func(e event_bus.EventT[event_bus.TimeEntryChanged]) error {
			return deps.BalanceService.Recompute(e.Context(), e.Data.EmployeeID)
		})

	log.Debug("Application dependencies wired")
	return deps
}
