package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateStaffUser inserts an HR staff account with an already hashed password
func (db *DB) CreateStaffUser(ctx context.Context, name, email, passwordHash string) (*StaffUser, error) {
	var u StaffUser
	err := db.q.QueryRow(ctx,
		`INSERT INTO staff_users (name, email, password_hash)
		 VALUES ($1, lower($2), $3)
		 RETURNING id, name, email, password_hash, created_at, updated_at`,
		name, email, passwordHash,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, writeErr("create staff user", err)
	}
	return &u, nil
}

// GetStaffUser retrieves a staff account by ID
func (db *DB) GetStaffUser(ctx context.Context, id uuid.UUID) (*StaffUser, error) {
	return db.getStaffUser(ctx, `id = $1`, id)
}

// GetStaffUserByEmail retrieves a staff account by email (case-insensitive)
func (db *DB) GetStaffUserByEmail(ctx context.Context, email string) (*StaffUser, error) {
	return db.getStaffUser(ctx, `email = lower($1)`, email)
}

func (db *DB) getStaffUser(ctx context.Context, where string, arg any) (*StaffUser, error) {
	var u StaffUser
	err := db.q.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM staff_users WHERE `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	return &u, nil
}
