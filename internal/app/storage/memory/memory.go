package memory

import (
	"context"
	"sync"
	"time"

	"github.com/qalabs/reporting-demo-api/internal/app/domain/user"
	"github.com/qalabs/reporting-demo-api/internal/app/storage"
	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and resets with the process; construct a fresh one per
// test for isolation.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]user.User
	// order tracks insertion order for listing.
	order []int64
}

var _ storage.UserStore = (*Store)(nil)

// New creates an empty store. IDs start at 1 and are never reused.
func New() *Store {
	return &Store{
		nextID: 1,
		users:  make(map[int64]user.User),
	}
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextIDLocked()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	s.users[u.ID] = u
	s.order = append(s.order, u.ID)
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.users[u.ID]
	if !ok {
		return user.User{}, apperr.NotFound("user %d not found", u.ID)
	}

	u.CreatedAt = original.CreatedAt
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (user.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if u := s.users[id]; u.Email == email {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]user.User, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.users[id])
	}
	return result, nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users), nil
}
