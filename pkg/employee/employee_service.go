package employee

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	GetAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, employee Employee) (Employee, error) {
	// The daily workload is derived once, on write, never at read time.
	employee.ExpectedMinutesPerDay = employee.WorkSchedule.ExpectedMinutes()
	if err := employee.Validate(); err != nil {
		return Employee{}, err
	}

	employee.ID = uuid.NewString()
	if err := s.repo.Store(ctx, employee); err != nil {
		return Employee{}, fmt.Errorf("failed to store employee: %w", err)
	}
	return employee, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Employee, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Employee, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, employee Employee) (Employee, error) {
	employee.ExpectedMinutesPerDay = employee.WorkSchedule.ExpectedMinutes()
	if err := employee.Validate(); err != nil {
		return Employee{}, err
	}

	updated, err := s.repo.Update(ctx, employee)
	if err != nil {
		return Employee{}, err
	}
	if !updated {
		log.Warnf("employee not updated, probably because it does not exist (%s)", employee.ID)
		return Employee{}, ErrNotFound
	}
	return employee, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("employee not deleted, probably because it does not exist (%s)", id)
		return false, nil
	}
	log.Infof("deleted employee %s and all their time entries", id)
	return true, nil
}
