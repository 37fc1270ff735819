package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pontobank/pontobank/pkg/timeutils"
	log "github.com/sirupsen/logrus"
)

type SettingsDTO struct {
	CompanyName         string               `json:"companyName"`
	ToleranceMinutes    int                  `json:"toleranceMinutes"`
	MaxExtraMinutes     int                  `json:"maxExtraMinutes"`
	AutoTransferEnabled bool                 `json:"autoTransferEnabled"`
	LastTransferMonth   string               `json:"lastTransferMonth,omitempty"`
	Holidays            []string             `json:"holidays"`
	VacationPeriods     []VacationPeriodDTO  `json:"vacationPeriods"`
}

type VacationPeriodDTO struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

type HolidayDTO struct {
	Date string `json:"date"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	settings, err := h.service.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(settingsToDTO(settings)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating settings")
	w.Header().Set("Content-Type", "application/json")

	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), Settings{
		CompanyName:         dto.CompanyName,
		ToleranceMinutes:    dto.ToleranceMinutes,
		MaxExtraMinutes:     dto.MaxExtraMinutes,
		AutoTransferEnabled: dto.AutoTransferEnabled,
	})
	if err != nil {
		if errors.Is(err, ErrNegativeTolerance) || errors.Is(err, ErrNegativeMaxExtra) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(settingsToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !timeutils.IsValidDate(dto.Date) {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := h.service.AddHoliday(r.Context(), dto.Date); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	removed, err := h.service.RemoveHoliday(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "Holiday not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddVacationPeriod(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto VacationPeriodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !timeutils.IsValidDate(dto.StartDate) || !timeutils.IsValidDate(dto.EndDate) {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	created, err := h.service.AddVacationPeriod(r.Context(), VacationPeriod{
		EmployeeID: dto.EmployeeID,
		StartDate:  dto.StartDate,
		EndDate:    dto.EndDate,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(vacationPeriodToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) RemoveVacationPeriod(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	removed, err := h.service.RemoveVacationPeriod(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "Vacation period not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func settingsToDTO(s Settings) SettingsDTO {
	periods := make([]VacationPeriodDTO, 0, len(s.VacationPeriods))
	for _, p := range s.VacationPeriods {
		periods = append(periods, vacationPeriodToDTO(p))
	}
	holidays := s.Holidays
	if holidays == nil {
		holidays = []string{}
	}
	return SettingsDTO{
		CompanyName:         s.CompanyName,
		ToleranceMinutes:    s.ToleranceMinutes,
		MaxExtraMinutes:     s.MaxExtraMinutes,
		AutoTransferEnabled: s.AutoTransferEnabled,
		LastTransferMonth:   s.LastTransferMonth,
		Holidays:            holidays,
		VacationPeriods:     periods,
	}
}

func vacationPeriodToDTO(p VacationPeriod) VacationPeriodDTO {
	return VacationPeriodDTO{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}
}
