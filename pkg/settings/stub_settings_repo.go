package settings

import (
	"context"
	"sort"
)

type StubRepository struct {
	settings Settings
}

func NewStubRepository() *StubRepository {
	return &StubRepository{settings: Settings{ToleranceMinutes: 5, MaxExtraMinutes: 10}}
}

func (s *StubRepository) Get(ctx context.Context) (Settings, error) {
	return s.settings, nil
}

func (s *StubRepository) Update(ctx context.Context, settings Settings) error {
	settings.Holidays = s.settings.Holidays
	settings.VacationPeriods = s.settings.VacationPeriods
	settings.LastTransferMonth = s.settings.LastTransferMonth
	s.settings = settings
	return nil
}

func (s *StubRepository) AddHoliday(ctx context.Context, date string) error {
	for _, h := range s.settings.Holidays {
		if h == date {
			return nil
		}
	}
	s.settings.Holidays = append(s.settings.Holidays, date)
	sort.Strings(s.settings.Holidays)
	return nil
}

func (s *StubRepository) RemoveHoliday(ctx context.Context, date string) (bool, error) {
	for i, h := range s.settings.Holidays {
		if h == date {
			s.settings.Holidays = append(s.settings.Holidays[:i], s.settings.Holidays[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) AddVacationPeriod(ctx context.Context, period VacationPeriod) error {
	s.settings.VacationPeriods = append(s.settings.VacationPeriods, period)
	return nil
}

func (s *StubRepository) RemoveVacationPeriod(ctx context.Context, id string) (bool, error) {
	for i, p := range s.settings.VacationPeriods {
		if p.ID == id {
			s.settings.VacationPeriods = append(s.settings.VacationPeriods[:i], s.settings.VacationPeriods[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) SetLastTransferMonth(ctx context.Context, month string) error {
	s.settings.LastTransferMonth = month
	return nil
}

func (s *StubRepository) Cleanup() {
	s.settings = Settings{ToleranceMinutes: 5, MaxExtraMinutes: 10}
}
