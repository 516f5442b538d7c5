package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetDepartment retrieves a department by ID
func (db *DB) GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	var d Department
	err := db.q.QueryRow(ctx,
		`SELECT id, name, created_at FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &d, nil
}

// ListDepartments returns all departments ordered by name
func (db *DB) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := db.q.Query(ctx, `SELECT id, name, created_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]Department, 0)
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// CreateDepartment inserts a department or returns the existing one with that
// name. Used by the create-department command and tests; the
// organisation module owns department management.
func (db *DB) CreateDepartment(ctx context.Context, name string) (*Department, error) {
	var d Department
	err := db.q.QueryRow(ctx,
		`INSERT INTO departments (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name, created_at`, name,
	).Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		return nil, writeErr("create department", err)
	}
	return &d, nil
}
