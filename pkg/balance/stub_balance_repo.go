package balance

import (
	"context"
	"sort"
)

// StubRepository keeps balances in memory. Unlike the SQL implementation it
// cannot recompute from time entries, so RecomputeEntries only counts calls;
// tests seed entry minutes through SetEntries.
type StubRepository struct {
	data       map[string]MonthlyBalance
	Recomputed []string
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]MonthlyBalance{}}
}

func stubKey(employeeID, month string) string {
	return employeeID + "|" + month
}

func (s *StubRepository) SetEntries(employeeID, month string, minutes int) {
	b := s.get(employeeID, month)
	b.EntriesMinutes = minutes
	s.data[stubKey(employeeID, month)] = b
}

func (s *StubRepository) RecomputeEntries(ctx context.Context, employeeID string) error {
	s.Recomputed = append(s.Recomputed, employeeID)
	return nil
}

func (s *StubRepository) GetMonth(ctx context.Context, employeeID, month string) (MonthlyBalance, error) {
	return s.get(employeeID, month), nil
}

func (s *StubRepository) GetAll(ctx context.Context, employeeID string) ([]MonthlyBalance, error) {
	var balances []MonthlyBalance
	for _, b := range s.data {
		if b.EmployeeID == employeeID {
			balances = append(balances, b)
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].Month < balances[j].Month })
	return balances, nil
}

func (s *StubRepository) SetAdjustment(ctx context.Context, employeeID, month string, minutes int) error {
	b := s.get(employeeID, month)
	b.AdjustmentMinutes = minutes
	s.data[stubKey(employeeID, month)] = b
	return nil
}

func (s *StubRepository) AddAdjustment(ctx context.Context, employeeID, month string, minutes int) error {
	b := s.get(employeeID, month)
	b.AdjustmentMinutes += minutes
	s.data[stubKey(employeeID, month)] = b
	return nil
}

func (s *StubRepository) get(employeeID, month string) MonthlyBalance {
	if b, ok := s.data[stubKey(employeeID, month)]; ok {
		return b
	}
	return MonthlyBalance{EmployeeID: employeeID, Month: month}
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]MonthlyBalance{}
	s.Recomputed = nil
}
