package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dfcarvalho/barberdesk/constants"
)

// BarberStore owns the staff roster. Seeded with two default barbers on
// first-ever initialization, same seed-once rules as the service catalog.
type BarberStore struct {
	mu      sync.RWMutex
	barbers []Barber

	snapshots SnapshotStore
	logger    *slog.Logger
	metrics   Metrics
	notifier  notifier
}

// BarberPatch is a partial update: nil fields are left untouched.
type BarberPatch struct {
	Name      *string
	Phone     *string
	Email     *string
	Specialty *string
	IsActive  *bool
}

func NewBarberStore(ctx context.Context, opts Options) *BarberStore {
	s := &BarberStore{
		snapshots: opts.Snapshots,
		logger:    opts.logger(),
		metrics:   opts.metrics(),
	}

	payload, ok, err := s.snapshots.Load(ctx, constants.SlotBarbers)
	if err != nil {
		s.logger.Warn("could not load barbers snapshot, using default roster", "error", err)
		s.barbers = defaultBarbers()
		return s
	}
	if !ok {
		s.seed(ctx)
		return s
	}

	var items []Barber
	if err := decodeSnapshot(payload, &items); err != nil {
		s.logger.Warn("could not decode barbers snapshot, using default roster", "error", err)
		s.barbers = defaultBarbers()
		return s
	}
	s.barbers = items
	return s
}

func (s *BarberStore) seed(ctx context.Context) {
	s.barbers = defaultBarbers()
	if err := s.persist(ctx); err != nil {
		s.logger.Warn("could not persist barber seed data", "error", err)
	}
}

func (s *BarberStore) Subscribe(fn func()) func() {
	return s.notifier.subscribe(fn)
}

// ListBarbers returns a copy of the roster in insertion order.
func (s *BarberStore) ListBarbers() []Barber {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Barber, len(s.barbers))
	copy(result, s.barbers)
	return result
}

// ActiveBarbers returns only the barbers currently marked active. The
// appointment form offers these as selectable targets.
func (s *BarberStore) ActiveBarbers() []Barber {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Barber
	for _, b := range s.barbers {
		if b.IsActive {
			result = append(result, b)
		}
	}
	return result
}

// GetBarber returns the barber with the given ID, or ok=false when absent.
func (s *BarberStore) GetBarber(id uuid.UUID) (Barber, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.barbers {
		if b.ID == id {
			return b, true
		}
	}
	return Barber{}, false
}

// CreateBarber appends a new barber. The ID is store-managed.
func (s *BarberStore) CreateBarber(ctx context.Context, b Barber) (Barber, error) {
	b.ID = uuid.New()

	s.mu.Lock()
	next := make([]Barber, len(s.barbers), len(s.barbers)+1)
	copy(next, s.barbers)
	s.barbers = append(next, b)
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("barber")
	s.notifier.notify()
	return b, err
}

// UpdateBarber applies the non-nil patch fields to the matching barber.
func (s *BarberStore) UpdateBarber(ctx context.Context, id uuid.UUID, patch BarberPatch) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("barber not found", "op", "update", "id", id)
		return ErrBarberNotFound
	}

	next := make([]Barber, len(s.barbers))
	copy(next, s.barbers)
	if patch.Name != nil {
		next[i].Name = *patch.Name
	}
	if patch.Phone != nil {
		next[i].Phone = *patch.Phone
	}
	if patch.Email != nil {
		next[i].Email = *patch.Email
	}
	if patch.Specialty != nil {
		next[i].Specialty = *patch.Specialty
	}
	if patch.IsActive != nil {
		next[i].IsActive = *patch.IsActive
	}
	s.barbers = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("barber")
	s.notifier.notify()
	return err
}

// DeleteBarber removes the matching barber unconditionally. Appointments
// referencing the barber are left alone.
func (s *BarberStore) DeleteBarber(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("barber not found", "op", "delete", "id", id)
		return ErrBarberNotFound
	}

	next := make([]Barber, 0, len(s.barbers)-1)
	next = append(next, s.barbers[:i]...)
	next = append(next, s.barbers[i+1:]...)
	s.barbers = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("barber")
	s.notifier.notify()
	return err
}

// ToggleActive flips the IsActive flag for the matching barber.
func (s *BarberStore) ToggleActive(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("barber not found", "op", "toggle_active", "id", id)
		return ErrBarberNotFound
	}

	next := make([]Barber, len(s.barbers))
	copy(next, s.barbers)
	next[i].IsActive = !next[i].IsActive
	s.barbers = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("barber")
	s.notifier.notify()
	return err
}

// indexOf must be called with the lock held.
func (s *BarberStore) indexOf(id uuid.UUID) int {
	for i, b := range s.barbers {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the lock held.
func (s *BarberStore) persist(ctx context.Context) error {
	payload, err := encodeSnapshot(s.barbers)
	if err != nil {
		s.metrics.RecordSnapshotFailure()
		s.logger.Warn("barbers snapshot not persisted", "error", err)
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	if err := s.snapshots.Save(ctx, constants.SlotBarbers, payload); err != nil {
		s.metrics.RecordSnapshotFailure()
		s.logger.Warn("barbers snapshot not persisted", "error", err)
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	return nil
}
