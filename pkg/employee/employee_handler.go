package employee

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pontobank/pontobank/pkg/timeutils"
	log "github.com/sirupsen/logrus"
)

type EmployeeDTO struct {
	ID                    string          `json:"id,omitempty"`
	Name                  string          `json:"name"`
	Email                 string          `json:"email,omitempty"`
	Phone                 string          `json:"phone,omitempty"`
	Department            string          `json:"department,omitempty"`
	Position              string          `json:"position,omitempty"`
	RegistrationID        string          `json:"registrationId,omitempty"`
	ContractType          string          `json:"contractType"`
	ScheduleType          string          `json:"scheduleType"`
	WorkDays              map[int]bool    `json:"workDays,omitempty"`
	WorkSchedule          WorkScheduleDTO `json:"workSchedule"`
	ExpectedMinutesPerDay int             `json:"expectedMinutesPerDay"`
	StartDate             string          `json:"startDate,omitempty"`
}

type WorkScheduleDTO struct {
	Entry    string `json:"entry"`
	LunchOut string `json:"lunchOut"`
	LunchIn  string `json:"lunchIn"`
	Exit     string `json:"exit"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new employee")
	w.Header().Set("Content-Type", "application/json")

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), dtoToEmployee(dto))
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(employeeToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	employees, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, employeeToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(employeeToDTO(e)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == "" || dto.ID != id {
		http.Error(w, "Invalid employee id in request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), dtoToEmployee(dto))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(employeeToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingWorkDays) ||
		errors.Is(err, ErrInvalidSchedule) ||
		errors.Is(err, ErrNegativeWorkload)
}

func employeeToDTO(e Employee) EmployeeDTO {
	var workDays map[int]bool
	if len(e.WorkDays) > 0 {
		workDays = make(map[int]bool, len(e.WorkDays))
		for day, working := range e.WorkDays {
			workDays[int(day)] = working
		}
	}
	return EmployeeDTO{
		ID:             e.ID,
		Name:           e.Name,
		Email:          e.Email,
		Phone:          e.Phone,
		Department:     e.Department,
		Position:       e.Position,
		RegistrationID: e.RegistrationID,
		ContractType:   string(e.ContractType),
		ScheduleType:   string(e.ScheduleType),
		WorkDays:       workDays,
		WorkSchedule: WorkScheduleDTO{
			Entry:    e.WorkSchedule.Entry,
			LunchOut: e.WorkSchedule.LunchOut,
			LunchIn:  e.WorkSchedule.LunchIn,
			Exit:     e.WorkSchedule.Exit,
		},
		ExpectedMinutesPerDay: e.ExpectedMinutesPerDay,
		StartDate:             e.StartDate,
	}
}

func dtoToEmployee(dto EmployeeDTO) Employee {
	var workDays WorkDays
	if len(dto.WorkDays) > 0 {
		workDays = WorkDays{}
		for day, working := range dto.WorkDays {
			if day >= 0 && day <= 6 {
				workDays[time.Weekday(day)] = working
			}
		}
	}
	return Employee{
		ID:             dto.ID,
		Name:           dto.Name,
		Email:          dto.Email,
		Phone:          dto.Phone,
		Department:     dto.Department,
		Position:       dto.Position,
		RegistrationID: dto.RegistrationID,
		ContractType:   ContractType(dto.ContractType),
		ScheduleType:   ScheduleType(dto.ScheduleType),
		WorkDays:       workDays,
		WorkSchedule: WorkSchedule{
			Entry:    timeutils.NormalizeTime(dto.WorkSchedule.Entry),
			LunchOut: timeutils.NormalizeTime(dto.WorkSchedule.LunchOut),
			LunchIn:  timeutils.NormalizeTime(dto.WorkSchedule.LunchIn),
			Exit:     timeutils.NormalizeTime(dto.WorkSchedule.Exit),
		},
		StartDate: dto.StartDate,
	}
}
