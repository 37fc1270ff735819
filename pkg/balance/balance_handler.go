package balance

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/pontobank/pontobank/pkg/timeutils"
)

type MonthlyBalanceDTO struct {
	Month             string `json:"month"`
	EntriesMinutes    int    `json:"entriesMinutes"`
	AdjustmentMinutes int    `json:"adjustmentMinutes"`
	TotalMinutes      int    `json:"totalMinutes"`
	TotalFormatted    string `json:"totalFormatted"`
}

type AccumulatedBalanceDTO struct {
	EmployeeID         string              `json:"employeeId"`
	AccumulatedMinutes int                 `json:"accumulatedMinutes"`
	Formatted          string              `json:"formatted"`
	Message            string              `json:"message"`
	Months             []MonthlyBalanceDTO `json:"months"`
}

type TransferResultDTO struct {
	FromMonth    string `json:"fromMonth"`
	ToMonth      string `json:"toMonth"`
	MovedMinutes int    `json:"movedMinutes"`
	AlreadyEmpty bool   `json:"alreadyEmpty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAccumulated(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	employeeID := mux.Vars(r)["id"]

	months, err := h.service.History(r.Context(), employeeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	accumulated := 0
	dtos := make([]MonthlyBalanceDTO, 0, len(months))
	for _, m := range months {
		accumulated += m.Total()
		dtos = append(dtos, monthToDTO(m))
	}

	response := AccumulatedBalanceDTO{
		EmployeeID:         employeeID,
		AccumulatedMinutes: accumulated,
		Formatted:          timeutils.ToTimeString(accumulated),
		Message:            timeutils.BalanceMessage(accumulated),
		Months:             dtos,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	month, err := h.service.MonthBalance(r.Context(), vars["id"], vars["month"])
	if err != nil {
		writeBalanceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(monthToDTO(month)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ResetMonth(w http.ResponseWriter, r *http.Request) {
	log.Debug("Resetting monthly balance")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	month, err := h.service.ResetMonth(r.Context(), vars["id"], vars["month"])
	if err != nil {
		writeBalanceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(monthToDTO(month)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) TransferMonth(w http.ResponseWriter, r *http.Request) {
	log.Debug("Transferring monthly balance")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	result, err := h.service.TransferMonth(r.Context(), vars["id"], vars["month"])
	if err != nil {
		writeBalanceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	response := TransferResultDTO{
		FromMonth:    result.FromMonth,
		ToMonth:      result.ToMonth,
		MovedMinutes: result.MovedMinutes,
		AlreadyEmpty: result.AlreadyEmpty,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeBalanceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidMonth) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func monthToDTO(m MonthlyBalance) MonthlyBalanceDTO {
	return MonthlyBalanceDTO{
		Month:             m.Month,
		EntriesMinutes:    m.EntriesMinutes,
		AdjustmentMinutes: m.AdjustmentMinutes,
		TotalMinutes:      m.Total(),
		TotalFormatted:    timeutils.ToTimeString(m.Total()),
	}
}
