package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pontobank/pontobank/pkg/employee"
)

type MonthReportDTO struct {
	EmployeeID       string   `json:"employeeId"`
	Month            string   `json:"month"`
	TotalWorkingDays int      `json:"totalWorkingDays"`
	FilledDays       int      `json:"filledDays"`
	WorkedMinutes    int      `json:"workedMinutes"`
	ExpectedMinutes  int      `json:"expectedMinutes"`
	BalanceMinutes   int      `json:"balanceMinutes"`
	MissingDates     []string `json:"missingDates"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	report, err := h.service.MonthReport(r.Context(), vars["id"], vars["month"])
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMonth):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, employee.ErrNotFound):
			http.Error(w, "Employee not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	dto := MonthReportDTO{
		EmployeeID:       report.EmployeeID,
		Month:            report.Month,
		TotalWorkingDays: report.TotalWorkingDays,
		FilledDays:       report.FilledDays,
		WorkedMinutes:    report.WorkedMinutes,
		ExpectedMinutes:  report.ExpectedMinutes,
		BalanceMinutes:   report.BalanceMinutes,
		MissingDates:     report.MissingDates,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
