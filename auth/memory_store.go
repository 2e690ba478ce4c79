package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/user/recipefinder-go/apperror"
)

// MemoryOwnerStore is an OwnerStore kept in process memory. It backs the
// `memory` storage mode and the service tests.
type MemoryOwnerStore struct {
	mu       sync.RWMutex
	nextID   int64
	byID     map[int64]*Owner
	byHandle map[string]int64
	now      func() time.Time
}

// NewMemoryOwnerStore creates an empty store.
func NewMemoryOwnerStore() *MemoryOwnerStore {
	return &MemoryOwnerStore{
		byID:     make(map[int64]*Owner),
		byHandle: make(map[string]int64),
		now:      time.Now,
	}
}

// Create stores a copy of owner under a new id.
func (s *MemoryOwnerStore) Create(_ context.Context, owner *Owner) (*Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byHandle[owner.Handle]; taken {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Customer with email %s already exists", owner.Handle), nil)
	}

	s.nextID++
	stored := *owner
	stored.ID = s.nextID
	stored.CreatedAt = s.now().UTC()
	s.byID[stored.ID] = &stored
	s.byHandle[stored.Handle] = stored.ID

	out := stored
	return &out, nil
}

// FindByHandle returns a copy of the owner with handle.
func (s *MemoryOwnerStore) FindByHandle(_ context.Context, handle string) (*Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byHandle[handle]
	if !ok {
		return nil, apperror.NewNotFoundError(ownerNotFoundMessage, nil)
	}
	out := *s.byID[id]
	return &out, nil
}

// FindByID returns a copy of the owner with id.
func (s *MemoryOwnerStore) FindByID(_ context.Context, id int64) (*Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, ok := s.byID[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Customer with id %d not found", id), nil)
	}
	out := *owner
	return &out, nil
}

// UpdatePassword replaces the stored hash.
func (s *MemoryOwnerStore) UpdatePassword(_ context.Context, id int64, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.byID[id]
	if !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("Customer with id %d not found", id), nil)
	}
	owner.HashedPassword = hashedPassword
	return nil
}
