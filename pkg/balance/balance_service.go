package balance

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/pontobank/pontobank/pkg/employee"
	"github.com/pontobank/pontobank/pkg/timeutils"
)

// TransferResult describes one executed month transfer.
type TransferResult struct {
	FromMonth    string
	ToMonth      string
	MovedMinutes int
	AlreadyEmpty bool
}

type Service interface {
	Recompute(ctx context.Context, employeeID string) error
	MonthBalance(ctx context.Context, employeeID, month string) (MonthlyBalance, error)
	History(ctx context.Context, employeeID string) ([]MonthlyBalance, error)
	AccumulatedBalance(ctx context.Context, employeeID string) (int, error)
	ResetMonth(ctx context.Context, employeeID, month string) (MonthlyBalance, error)
	TransferMonth(ctx context.Context, employeeID, month string) (TransferResult, error)
	TransferAll(ctx context.Context, month string) error
}

type ServiceImpl struct {
	repo            Repository
	employeeService employee.Service
}

func NewService(repo Repository, employeeService employee.Service) *ServiceImpl {
	return &ServiceImpl{repo: repo, employeeService: employeeService}
}

func (s *ServiceImpl) Recompute(ctx context.Context, employeeID string) error {
	return s.repo.RecomputeEntries(ctx, employeeID)
}

func (s *ServiceImpl) MonthBalance(ctx context.Context, employeeID, month string) (MonthlyBalance, error) {
	if !timeutils.IsValidMonth(month) {
		return MonthlyBalance{}, ErrInvalidMonth
	}
	return s.repo.GetMonth(ctx, employeeID, month)
}

func (s *ServiceImpl) History(ctx context.Context, employeeID string) ([]MonthlyBalance, error) {
	return s.repo.GetAll(ctx, employeeID)
}

func (s *ServiceImpl) AccumulatedBalance(ctx context.Context, employeeID string) (int, error) {
	balances, err := s.repo.GetAll(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, b := range balances {
		total += b.Total()
	}
	return total, nil
}

// ResetMonth zeroes the month's effective balance by writing a compensating
// adjustment. Entry minutes stay untouched so a later recompute does not
// resurrect the balance.
func (s *ServiceImpl) ResetMonth(ctx context.Context, employeeID, month string) (MonthlyBalance, error) {
	if !timeutils.IsValidMonth(month) {
		return MonthlyBalance{}, ErrInvalidMonth
	}
	current, err := s.repo.GetMonth(ctx, employeeID, month)
	if err != nil {
		return MonthlyBalance{}, err
	}
	if err := s.repo.SetAdjustment(ctx, employeeID, month, -current.EntriesMinutes); err != nil {
		return MonthlyBalance{}, err
	}
	return s.repo.GetMonth(ctx, employeeID, month)
}

// TransferMonth moves the month's effective balance into the following month
// and zeroes the source. A month already at zero transfers nothing.
func (s *ServiceImpl) TransferMonth(ctx context.Context, employeeID, month string) (TransferResult, error) {
	next, err := NextMonth(month)
	if err != nil {
		return TransferResult{}, err
	}

	current, err := s.repo.GetMonth(ctx, employeeID, month)
	if err != nil {
		return TransferResult{}, err
	}

	total := current.Total()
	if total == 0 {
		return TransferResult{FromMonth: month, ToMonth: next, AlreadyEmpty: true}, nil
	}

	if err := s.repo.AddAdjustment(ctx, employeeID, next, total); err != nil {
		return TransferResult{}, err
	}
	if err := s.repo.SetAdjustment(ctx, employeeID, month, -current.EntriesMinutes); err != nil {
		return TransferResult{}, err
	}

	log.Infof("transferred %d min from %s to %s for employee %s", total, month, next, employeeID)
	return TransferResult{FromMonth: month, ToMonth: next, MovedMinutes: total}, nil
}

// TransferAll runs TransferMonth for every employee. Used by the automatic
// month rollover.
func (s *ServiceImpl) TransferAll(ctx context.Context, month string) error {
	employees, err := s.employeeService.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range employees {
		if _, err := s.TransferMonth(ctx, e.ID, month); err != nil {
			return fmt.Errorf("could not transfer %s for employee %s: %w", month, e.ID, err)
		}
	}
	return nil
}
