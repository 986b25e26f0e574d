package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dfcarvalho/barberdesk/constants"
)

// CustomerStore owns the customer roster. The collection is held in memory,
// persisted in full to its snapshot slot on every mutation, and replaced
// wholesale on each mutation so consumers can compare slice identity.
type CustomerStore struct {
	mu        sync.RWMutex
	customers []Customer

	snapshots SnapshotStore
	logger    *slog.Logger
	metrics   Metrics
	notifier  notifier
}

// CustomerPatch is a partial update: nil fields are left untouched.
// TotalVisits and LastVisit are store-managed and only change through
// RecordVisit.
type CustomerPatch struct {
	Name  *string
	Phone *string
	Email *string
}

// NewCustomerStore rehydrates the roster from its snapshot slot. A missing
// or unreadable snapshot falls back to an empty roster; startup never fails
// for that reason.
func NewCustomerStore(ctx context.Context, opts Options) *CustomerStore {
	s := &CustomerStore{
		snapshots: opts.Snapshots,
		logger:    opts.logger(),
		metrics:   opts.metrics(),
	}

	payload, ok, err := s.snapshots.Load(ctx, constants.SlotCustomers)
	if err != nil {
		s.logger.Warn("could not load customers snapshot, starting empty", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var items []Customer
	if err := decodeSnapshot(payload, &items); err != nil {
		s.logger.Warn("could not decode customers snapshot, starting empty", "error", err)
		return s
	}
	s.customers = items
	return s
}

// Subscribe registers fn to run after every applied mutation. The returned
// function removes the subscription.
func (s *CustomerStore) Subscribe(fn func()) func() {
	return s.notifier.subscribe(fn)
}

// ListCustomers returns a copy of the roster in insertion order.
func (s *CustomerStore) ListCustomers() []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Customer, len(s.customers))
	copy(result, s.customers)
	return result
}

// GetCustomer returns the customer with the given ID, or ok=false when absent.
func (s *CustomerStore) GetCustomer(id uuid.UUID) (Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// CreateCustomer appends a new customer. ID, CreatedAt and the visit counters
// are store-managed and overwrite whatever the caller supplied.
func (s *CustomerStore) CreateCustomer(ctx context.Context, c Customer) (Customer, error) {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.TotalVisits = 0
	c.LastVisit = nil

	s.mu.Lock()
	next := make([]Customer, len(s.customers), len(s.customers)+1)
	copy(next, s.customers)
	s.customers = append(next, c)
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("customer")
	s.notifier.notify()
	return c, err
}

// UpdateCustomer applies the non-nil patch fields to the matching customer.
// An unknown ID leaves the collection unchanged and returns
// ErrCustomerNotFound.
func (s *CustomerStore) UpdateCustomer(ctx context.Context, id uuid.UUID, patch CustomerPatch) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("customer not found", "op", "update", "id", id)
		return ErrCustomerNotFound
	}

	next := make([]Customer, len(s.customers))
	copy(next, s.customers)
	if patch.Name != nil {
		next[i].Name = *patch.Name
	}
	if patch.Phone != nil {
		next[i].Phone = *patch.Phone
	}
	if patch.Email != nil {
		next[i].Email = *patch.Email
	}
	s.customers = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("customer")
	s.notifier.notify()
	return err
}

// DeleteCustomer removes the matching customer. Appointments referencing the
// customer are left alone; their reference simply stops resolving.
func (s *CustomerStore) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("customer not found", "op", "delete", "id", id)
		return ErrCustomerNotFound
	}

	next := make([]Customer, 0, len(s.customers)-1)
	next = append(next, s.customers[:i]...)
	next = append(next, s.customers[i+1:]...)
	s.customers = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("customer")
	s.notifier.notify()
	return err
}

// RecordVisit increments TotalVisits by one and stamps LastVisit. This is
// the only mutation path for either field.
func (s *CustomerStore) RecordVisit(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("customer not found", "op", "record_visit", "id", id)
		return ErrCustomerNotFound
	}

	next := make([]Customer, len(s.customers))
	copy(next, s.customers)
	now := time.Now()
	next[i].TotalVisits++
	next[i].LastVisit = &now
	s.customers = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("customer")
	s.notifier.notify()
	return err
}

// indexOf must be called with the lock held.
func (s *CustomerStore) indexOf(id uuid.UUID) int {
	for i, c := range s.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the lock held.
func (s *CustomerStore) persist(ctx context.Context) error {
	payload, err := encodeSnapshot(s.customers)
	if err != nil {
		s.metrics.RecordSnapshotFailure()
		s.logger.Warn("customers snapshot not persisted", "error", err)
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	if err := s.snapshots.Save(ctx, constants.SlotCustomers, payload); err != nil {
		s.metrics.RecordSnapshotFailure()
		s.logger.Warn("customers snapshot not persisted", "error", err)
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	return nil
}
