package timesheet

import (
	"context"
	"sort"
	"strings"
)

type StubRepository struct {
	data map[string]TimeEntry
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]TimeEntry{}}
}

func key(employeeID, date string) string {
	return employeeID + "|" + date
}

func (s *StubRepository) Upsert(ctx context.Context, entry TimeEntry) error {
	s.data[key(entry.EmployeeID, entry.Date)] = entry
	return nil
}

func (s *StubRepository) Get(ctx context.Context, employeeID, date string) (TimeEntry, error) {
	entry, ok := s.data[key(employeeID, date)]
	if !ok {
		return TimeEntry{}, ErrNotFound
	}
	return entry, nil
}

func (s *StubRepository) GetMonth(ctx context.Context, employeeID, month string) ([]TimeEntry, error) {
	var entries []TimeEntry
	for _, e := range s.data {
		if e.EmployeeID == employeeID && strings.HasPrefix(e.Date, month+"-") {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

func (s *StubRepository) Delete(ctx context.Context, employeeID, date string) (bool, error) {
	k := key(employeeID, date)
	if _, ok := s.data[k]; !ok {
		return false, nil
	}
	delete(s.data, k)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]TimeEntry{}
}
