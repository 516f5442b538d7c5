// Package recruitment implements the hiring workflow: job postings, the
// candidate creation guard, the stage transition guard and the hire
// transaction that turns a candidate into an employee.
package recruitment

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/events"
)

// OverridePolicy decides which transitions the reason-carrying status
// update may take.
type OverridePolicy string

const (
	// PolicyBypass ignores the transition table.
	PolicyBypass OverridePolicy = "bypass"
	// PolicyRejectedOnly lets REJECTED through from anywhere and checks the
	// table for everything else.
	PolicyRejectedOnly OverridePolicy = "rejected_only"
	// PolicyGuarded applies the same rules as ChangeStage.
	PolicyGuarded OverridePolicy = "guarded"
)

// ParseOverridePolicy validates a configured policy name. Empty means bypass.
func ParseOverridePolicy(s string) (OverridePolicy, error) {
	switch p := OverridePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyBypass, nil
	case PolicyBypass, PolicyRejectedOnly, PolicyGuarded:
		return p, nil
	}
	return "", fmt.Errorf("unknown status override policy %q", s)
}

// Service holds the recruitment business rules.
type Service struct {
	store    Store
	events   events.Publisher
	policy   OverridePolicy
	newToken func() (string, error)
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets where domain events go. Defaults to events.Nop.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithOverridePolicy sets the policy of UpdateStatus. Defaults to PolicyBypass.
func WithOverridePolicy(p OverridePolicy) Option {
	return func(s *Service) { s.policy = p }
}

// WithTokenGenerator replaces the public token generator.
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(s *Service) { s.newToken = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

// NewService creates a Service on top of store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		events:   events.Nop{},
		policy:   PolicyBypass,
		newToken: GeneratePublicToken,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the configured status override policy.
func (s *Service) Policy() OverridePolicy { return s.policy }

// GeneratePublicToken returns 32 random bytes, base64url encoded.
func GeneratePublicToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate public token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// notFound translates db.ErrNotFound from a write into the domain variant.
// Writes only see it when the row vanished after the existence check.
func notFound(err error, variant *Error) error {
	if errors.Is(err, db.ErrNotFound) {
		return variant
	}
	return err
}

// normalizeEmail lower-cases and trims an address so (job, email) uniqueness
// is case-insensitive.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// optional turns blank strings into nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
