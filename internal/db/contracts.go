package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const contractColumns = `id, employee_id, contract_type, start_date, end_date, salary::float8, terms, created_at`

func scanContract(row pgx.Row) (*Contract, error) {
	var c Contract
	var end *Date
	if err := row.Scan(&c.ID, &c.EmployeeID, &c.ContractType, &c.StartDate, &end,
		&c.Salary, &c.Terms, &c.CreatedAt); err != nil {
		return nil, err
	}
	if end != nil && !end.IsZero() {
		c.EndDate = end
	}
	return &c, nil
}

// GetContract retrieves a contract by ID
func (db *DB) GetContract(ctx context.Context, id uuid.UUID) (*Contract, error) {
	c, err := scanContract(db.q.QueryRow(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

// ListContracts returns an employee's contracts, latest start date first
func (db *DB) ListContracts(ctx context.Context, employeeID uuid.UUID) ([]Contract, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE employee_id = $1 ORDER BY start_date DESC`,
		employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, *c)
	}
	return contracts, rows.Err()
}

// CreateContract inserts a contract
func (db *DB) CreateContract(ctx context.Context, in *ContractInput) (*Contract, error) {
	var end any
	if in.EndDate != nil {
		end = *in.EndDate
	}
	c, err := scanContract(db.q.QueryRow(ctx,
		`INSERT INTO contracts (employee_id, contract_type, start_date, end_date, salary, terms)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+contractColumns,
		in.EmployeeID, in.ContractType, in.StartDate, end, in.Salary, in.Terms,
	))
	if err != nil {
		return nil, writeErr("create contract", err)
	}
	return c, nil
}
