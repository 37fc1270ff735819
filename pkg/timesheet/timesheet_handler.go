package timesheet

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/pontobank/pontobank/pkg/employee"
)

type TimeEntryDTO struct {
	EmployeeID     string         `json:"employeeId"`
	Date           string         `json:"date"`
	Entry          string         `json:"entry,omitempty"`
	LunchOut       string         `json:"lunchOut,omitempty"`
	LunchIn        string         `json:"lunchIn,omitempty"`
	Exit           string         `json:"exit,omitempty"`
	Breaks         []WorkBreakDTO `json:"breaks,omitempty"`
	WorkedMinutes  int            `json:"workedMinutes"`
	BalanceMinutes int            `json:"balanceMinutes"`
	Status         string         `json:"status"`
	Notes          string         `json:"notes,omitempty"`
}

type WorkBreakDTO struct {
	ID         string `json:"id,omitempty"`
	ExitTime   string `json:"exitTime"`
	ReturnTime string `json:"returnTime"`
	Reason     string `json:"reason,omitempty"`
}

type EvaluationDTO struct {
	WorkedMinutes  int    `json:"workedMinutes"`
	BalanceMinutes int    `json:"balanceMinutes"`
	Status         string `json:"status"`
	Adjusted       bool   `json:"adjusted"`
	Message        string `json:"message"`
}

type upsertResponse struct {
	Entry      TimeEntryDTO  `json:"entry"`
	Evaluation EvaluationDTO `json:"evaluation"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	log.Debug("Upserting time entry")
	w.Header().Set("Content-Type", "application/json")

	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}

	stored, evaluation, err := h.service.Upsert(r.Context(), entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	response := upsertResponse{Entry: entryToDTO(stored), Evaluation: evaluationToDTO(evaluation)}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}

	evaluation, err := h.service.Preview(r.Context(), entry)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			// A preview of an invalid day is still an answer, not a failure.
			evaluation = Evaluation{Status: validationErr.Status, Message: validationErr.Message}
		} else {
			writeServiceError(w, err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(evaluationToDTO(evaluation)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	entry, err := h.service.Get(r.Context(), vars["id"], vars["date"])
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Time entry not found", http.StatusNotFound)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ListMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	month := r.URL.Query().Get("month")
	entries, err := h.service.ListMonth(r.Context(), mux.Vars(r)["id"], month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]TimeEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, entryToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	deleted, err := h.service.Delete(r.Context(), vars["id"], vars["date"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "Time entry not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeEntry(w http.ResponseWriter, r *http.Request) (TimeEntry, bool) {
	vars := mux.Vars(r)

	var dto TimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return TimeEntry{}, false
	}
	dto.EmployeeID = vars["id"]
	if date, ok := vars["date"]; ok {
		dto.Date = date
	}

	return dtoToEntry(dto), true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Message, http.StatusUnprocessableEntity)
	case errors.Is(err, ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, employee.ErrNotFound):
		http.Error(w, "Employee not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func dtoToEntry(dto TimeEntryDTO) TimeEntry {
	breaks := make([]WorkBreak, 0, len(dto.Breaks))
	for _, b := range dto.Breaks {
		breaks = append(breaks, WorkBreak{
			ID:         b.ID,
			ExitTime:   b.ExitTime,
			ReturnTime: b.ReturnTime,
			Reason:     b.Reason,
		})
	}
	return TimeEntry{
		EmployeeID: dto.EmployeeID,
		Date:       dto.Date,
		Entry:      dto.Entry,
		LunchOut:   dto.LunchOut,
		LunchIn:    dto.LunchIn,
		Exit:       dto.Exit,
		Breaks:     breaks,
		Status:     DayStatus(dto.Status),
		Notes:      dto.Notes,
	}
}

func entryToDTO(e TimeEntry) TimeEntryDTO {
	breaks := make([]WorkBreakDTO, 0, len(e.Breaks))
	for _, b := range e.Breaks {
		breaks = append(breaks, WorkBreakDTO{
			ID:         b.ID,
			ExitTime:   b.ExitTime,
			ReturnTime: b.ReturnTime,
			Reason:     b.Reason,
		})
	}
	return TimeEntryDTO{
		EmployeeID:     e.EmployeeID,
		Date:           e.Date,
		Entry:          e.Entry,
		LunchOut:       e.LunchOut,
		LunchIn:        e.LunchIn,
		Exit:           e.Exit,
		Breaks:         breaks,
		WorkedMinutes:  e.WorkedMinutes,
		BalanceMinutes: e.BalanceMinutes,
		Status:         string(e.Status),
		Notes:          e.Notes,
	}
}

func evaluationToDTO(ev Evaluation) EvaluationDTO {
	return EvaluationDTO{
		WorkedMinutes:  ev.WorkedMinutes,
		BalanceMinutes: ev.BalanceMinutes,
		Status:         string(ev.Status),
		Adjusted:       ev.Adjusted,
		Message:        ev.Message,
	}
}
