// Package users implements the user collection service: identity assignment,
// validation, uniqueness and search.
package users

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/qalabs/reporting-demo-api/internal/app/domain/user"
	"github.com/qalabs/reporting-demo-api/internal/app/storage"
	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
	"github.com/qalabs/reporting-demo-api/pkg/logger"
)

// Service is the sole point of truth for the user collection.
type Service struct {
	store storage.UserStore
	log   *logger.Logger

	// latency, when positive, is slept before every operation to simulate
	// asynchronous I/O for reporting demos.
	latency time.Duration

	// flakyRate is the failure probability of FlakyOperation.
	flakyRate float64
}

// Option configures a Service.
type Option func(*Service)

// WithLatency sets an artificial per-operation delay.
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// WithFlakyRate overrides the FlakyOperation failure probability.
func WithFlakyRate(rate float64) Option {
	return func(s *Service) { s.flakyRate = rate }
}

// New constructs a user service backed by the given store.
func New(store storage.UserStore, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	s := &Service{
		store:     store,
		log:       log,
		flakyRate: 0.3,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update carries the optional fields of a partial user update. Nil fields are
// left unchanged.
type Update struct {
	Name  *string
	Email *string
	Age   *int
}

// Create validates the fields, enforces email uniqueness and stores a new
// user. The store assigns the id.
func (s *Service) Create(ctx context.Context, name, email string, age int) (user.User, error) {
	s.delay()

	if !user.ValidateName(name) {
		return user.User{}, apperr.Validation("invalid name")
	}
	if !user.ValidateEmail(email) {
		return user.User{}, apperr.Validation("invalid email")
	}
	if !user.ValidateAge(age) {
		return user.User{}, apperr.Validation("invalid age")
	}

	if _, exists, err := s.store.GetUserByEmail(ctx, email); err != nil {
		return user.User{}, err
	} else if exists {
		return user.User{}, apperr.Conflict("email already exists")
	}

	created, err := s.store.CreateUser(ctx, user.New(0, name, email, age))
	if err != nil {
		return user.User{}, err
	}

	s.log.WithField("user_id", created.ID).
		WithField("email", created.Email).
		Info("user created")
	return created, nil
}

// GetByID returns the user with the given id. Absence is a normal outcome.
func (s *Service) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	s.delay()
	return s.store.GetUser(ctx, id)
}

// GetByEmail returns the user with an exactly matching email.
func (s *Service) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	s.delay()
	return s.store.GetUserByEmail(ctx, email)
}

// GetAll returns a snapshot of all users in insertion order.
func (s *Service) GetAll(ctx context.Context) ([]user.User, error) {
	s.delay()
	return s.store.ListUsers(ctx)
}

// GetActive returns the users whose active flag is set.
func (s *Service) GetActive(ctx context.Context) ([]user.User, error) {
	s.delay()
	all, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]user.User, 0, len(all))
	for _, u := range all {
		if u.Active {
			result = append(result, u)
		}
	}
	return result, nil
}

// GetAdults returns the users aged 18 or older.
func (s *Service) GetAdults(ctx context.Context) ([]user.User, error) {
	s.delay()
	all, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]user.User, 0, len(all))
	for _, u := range all {
		if u.IsAdult() {
			result = append(result, u)
		}
	}
	return result, nil
}

// Apply updates the supplied fields after validating each one. Unsupplied
// fields are unchanged; a validation failure leaves the stored user intact.
//
// Email uniqueness is only enforced at creation time; updates validate the
// format but not uniqueness. See DESIGN.md for the rationale.
func (s *Service) Apply(ctx context.Context, id int64, upd Update) (user.User, error) {
	s.delay()

	u, ok, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	if !ok {
		return user.User{}, apperr.NotFound("User not found")
	}

	if upd.Email != nil && !user.ValidateEmail(*upd.Email) {
		return user.User{}, apperr.Validation("invalid email")
	}
	if upd.Age != nil && !user.ValidateAge(*upd.Age) {
		return user.User{}, apperr.Validation("invalid age")
	}
	if upd.Name != nil && !user.ValidateName(*upd.Name) {
		return user.User{}, apperr.Validation("invalid name")
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}

	updated, err := s.store.UpdateUser(ctx, u)
	if err != nil {
		return user.User{}, err
	}
	s.log.WithField("user_id", id).Info("user updated")
	return updated, nil
}

// SetActive toggles the active flag.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (user.User, error) {
	s.delay()

	u, ok, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	if !ok {
		return user.User{}, apperr.NotFound("User not found")
	}

	if active {
		u.Activate()
	} else {
		u.Deactivate()
	}
	return s.store.UpdateUser(ctx, u)
}

// Delete removes the user with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.delay()

	deleted, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("User not found")
	}
	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}

// Count returns the collection size.
func (s *Service) Count(ctx context.Context) (int, error) {
	s.delay()
	return s.store.CountUsers(ctx)
}

// Search returns the users whose name or email contains the query,
// case-insensitively. Each user appears at most once. An empty query matches
// every user.
func (s *Service) Search(ctx context.Context, query string) ([]user.User, error) {
	s.delay()

	all, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(query)
	result := make([]user.User, 0, len(all))
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.Name), lower) ||
			strings.Contains(strings.ToLower(u.Email), lower) {
			result = append(result, u)
		}
	}
	return result, nil
}

// SimulateError always fails. It exists so error reporting paths can be
// exercised deterministically.
func (s *Service) SimulateError(_ context.Context) error {
	s.delay()
	return apperr.Internal("simulated error for testing", nil)
}

// FlakyOperation fails with probability flakyRate. It is an intentionally
// unreliable demo helper, not a resilience mechanism.
func (s *Service) FlakyOperation(_ context.Context) (string, error) {
	s.delay()
	if rand.Float64() < s.flakyRate {
		return "", apperr.Internal("flaky operation failed", nil)
	}
	return "Success", nil
}

func (s *Service) delay() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}
