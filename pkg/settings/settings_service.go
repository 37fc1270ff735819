package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) (Settings, error)
	AddHoliday(ctx context.Context, date string) error
	RemoveHoliday(ctx context.Context, date string) (bool, error)
	AddVacationPeriod(ctx context.Context, period VacationPeriod) (VacationPeriod, error)
	RemoveVacationPeriod(ctx context.Context, id string) (bool, error)
	MarkTransferRun(ctx context.Context, month string) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Get(ctx context.Context) (Settings, error) {
	return s.repo.Get(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, settings Settings) (Settings, error) {
	if settings.ToleranceMinutes < 0 {
		return Settings{}, ErrNegativeTolerance
	}
	if settings.MaxExtraMinutes < 0 {
		return Settings{}, ErrNegativeMaxExtra
	}
	if err := s.repo.Update(ctx, settings); err != nil {
		return Settings{}, err
	}
	return s.repo.Get(ctx)
}

func (s *ServiceImpl) AddHoliday(ctx context.Context, date string) error {
	log.Infof("adding holiday %s", date)
	return s.repo.AddHoliday(ctx, date)
}

func (s *ServiceImpl) RemoveHoliday(ctx context.Context, date string) (bool, error) {
	return s.repo.RemoveHoliday(ctx, date)
}

func (s *ServiceImpl) AddVacationPeriod(ctx context.Context, period VacationPeriod) (VacationPeriod, error) {
	if period.EndDate < period.StartDate {
		return VacationPeriod{}, ErrInvalidPeriod
	}
	period.ID = uuid.NewString()
	if err := s.repo.AddVacationPeriod(ctx, period); err != nil {
		return VacationPeriod{}, fmt.Errorf("failed to add vacation period: %w", err)
	}
	return period, nil
}

func (s *ServiceImpl) RemoveVacationPeriod(ctx context.Context, id string) (bool, error) {
	return s.repo.RemoveVacationPeriod(ctx, id)
}

func (s *ServiceImpl) MarkTransferRun(ctx context.Context, month string) error {
	return s.repo.SetLastTransferMonth(ctx, month)
}
