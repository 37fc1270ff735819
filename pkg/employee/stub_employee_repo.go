package employee

import (
	"context"
	"sort"
)

type StubRepository struct {
	data map[string]Employee
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Employee{}}
}

func (s *StubRepository) Store(ctx context.Context, employee Employee) error {
	s.data[employee.ID] = employee
	return nil
}

func (s *StubRepository) Get(ctx context.Context, id string) (Employee, error) {
	employee, ok := s.data[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return employee, nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Employee, error) {
	employees := make([]Employee, 0, len(s.data))
	for _, e := range s.data {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	return employees, nil
}

func (s *StubRepository) Update(ctx context.Context, employee Employee) (bool, error) {
	if _, ok := s.data[employee.ID]; !ok {
		return false, nil
	}
	s.data[employee.ID] = employee
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]Employee{}
}
