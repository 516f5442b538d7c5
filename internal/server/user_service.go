package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/config"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
)

// StaffStore is the storage UserService needs. *db.DB implements it.
type StaffStore interface {
	CreateStaffUser(ctx context.Context, name, email, passwordHash string) (*db.StaffUser, error)
	GetStaffUser(ctx context.Context, id uuid.UUID) (*db.StaffUser, error)
	GetStaffUserByEmail(ctx context.Context, email string) (*db.StaffUser, error)
}

// UserService registers and authenticates HR staff accounts.
type UserService struct {
	store          StaffStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a UserService.
func NewUserService(store StaffStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{store: store, passwordConfig: passwordConfig}
}

func toStaffUser(u *db.StaffUser) *types.StaffUser {
	if u == nil {
		return nil
	}
	return &types.StaffUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Register creates a staff account.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.StaffUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.store.GetStaffUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.store.CreateStaffUser(ctx, strings.TrimSpace(req.Name), email, hash)
	if err != nil {
		if db.IsConstraint(err, db.ConstraintStaffEmail) {
			return nil, &ErrEmailAlreadyExists{Email: email}
		}
		return nil, fmt.Errorf("failed to create staff user: %w", err)
	}
	return toStaffUser(u), nil
}

// Login authenticates a staff account. Unknown emails and wrong passwords
// fail the same way.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.StaffUser, error) {
	u, err := s.store.GetStaffUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get staff user by email: %w", err)
	}
	if u == nil || !s.passwordConfig.VerifyPassword(req.Password, u.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return toStaffUser(u), nil
}

// Get returns a staff account by ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*types.StaffUser, error) {
	u, err := s.store.GetStaffUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	if u == nil {
		return nil, &ErrUserNotFound{UserID: id}
	}
	return toStaffUser(u), nil
}
