package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, first_name, last_name, email, phone, job_title,
	COALESCE(department_id, '00000000-0000-0000-0000-000000000000'::uuid),
	manager_id, salary::float8, hire_date, job_type, created_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.JobTitle,
		&e.DepartmentID, &e.ManagerID, &e.Salary, &e.HireDate, &e.JobType, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEmployee retrieves an employee by ID
func (db *DB) GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error) {
	e, err := scanEmployee(db.q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetEmployeeByEmail retrieves an employee by email (case-insensitive)
func (db *DB) GetEmployeeByEmail(ctx context.Context, email string) (*Employee, error) {
	e, err := scanEmployee(db.q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return e, nil
}

// CreateEmployee inserts an employee record
func (db *DB) CreateEmployee(ctx context.Context, in *EmployeeCreateInput) (*Employee, error) {
	e, err := scanEmployee(db.q.QueryRow(ctx,
		`INSERT INTO employees (first_name, last_name, email, phone, job_title,
		                        department_id, manager_id, salary, hire_date, job_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+employeeColumns,
		in.FirstName, in.LastName, in.Email, in.Phone, in.JobTitle,
		in.DepartmentID, in.ManagerID, in.Salary, in.HireDate, in.JobType,
	))
	if err != nil {
		return nil, writeErr("create employee", err)
	}
	return e, nil
}
