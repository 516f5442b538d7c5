package recruitment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
)

// ContractInput is the data of a new employment contract.
type ContractInput struct {
	EmployeeID   uuid.UUID
	ContractType string
	StartDate    db.Date
	EndDate      *db.Date
	Salary       *float64
	Terms        *string
}

// CreateContract records a contract for an existing employee. Contracts are
// not linked back to the candidate the employee was hired from.
func (s *Service) CreateContract(ctx context.Context, in ContractInput) (*db.Contract, error) {
	rec := &db.ContractInput{
		EmployeeID:   in.EmployeeID,
		ContractType: strings.TrimSpace(in.ContractType),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Salary:       in.Salary,
		Terms:        optional(in.Terms),
	}
	if rec.ContractType == "" {
		return nil, ErrValidation.Withf("Contract type is required")
	}
	if rec.StartDate.IsZero() {
		return nil, ErrValidation.Withf("Start date is required")
	}
	if rec.EndDate != nil && rec.EndDate.IsZero() {
		rec.EndDate = nil
	}
	if rec.EndDate != nil && rec.EndDate.Before(rec.StartDate.Time) {
		return nil, ErrValidation.Withf("End date must not be before start date")
	}
	if rec.Salary != nil && *rec.Salary < 0 {
		return nil, ErrValidation.Withf("Salary must not be negative")
	}

	var created *db.Contract
	err := s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			e, err := repo.GetEmployee(ctx, rec.EmployeeID)
			if err != nil {
				return err
			}
			if e == nil {
				return ErrEmployeeNotFound
			}
			return nil
		},
		func(ctx context.Context, repo Repository) (err error) {
			created, err = repo.CreateContract(ctx, rec)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetContract returns one contract.
func (s *Service) GetContract(ctx context.Context, id uuid.UUID) (*db.Contract, error) {
	c, err := s.store.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContractNotFound
	}
	return c, nil
}

// ListContracts lists an employee's contracts.
func (s *Service) ListContracts(ctx context.Context, employeeID uuid.UUID) ([]db.Contract, error) {
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.store.ListContracts(ctx, employeeID)
}

// GetEmployee returns an employee created by a hire or by another module.
func (s *Service) GetEmployee(ctx context.Context, id uuid.UUID) (*db.Employee, error) {
	e, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	return e, nil
}
