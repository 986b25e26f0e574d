package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dfcarvalho/barberdesk/constants"
)

// ServiceStore owns the service catalog. On first-ever initialization it is
// seeded with the default catalog; the seed is persisted immediately so a
// later restart never re-seeds, even over an emptied catalog.
type ServiceStore struct {
	mu       sync.RWMutex
	services []Service

	snapshots SnapshotStore
	logger    *slog.Logger
	metrics   Metrics
	notifier  notifier
}

// ServicePatch is a partial update: nil fields are left untouched.
type ServicePatch struct {
	Name        *string
	Description *string
	Duration    *int
	Price       *float64
}

func NewServiceStore(ctx context.Context, opts Options) *ServiceStore {
	s := &ServiceStore{
		snapshots: opts.Snapshots,
		logger:    opts.logger(),
		metrics:   opts.metrics(),
	}

	payload, ok, err := s.snapshots.Load(ctx, constants.SlotServices)
	if err != nil {
		s.logger.Warn("could not load services snapshot, using default catalog", "error", err)
		s.services = defaultServices()
		return s
	}
	if !ok {
		s.seed(ctx)
		return s
	}

	var items []Service
	if err := decodeSnapshot(payload, &items); err != nil {
		s.logger.Warn("could not decode services snapshot, using default catalog", "error", err)
		s.services = defaultServices()
		return s
	}
	s.services = items
	return s
}

// seed populates and persists the default catalog. Persisting right away
// pins the generated IDs so appointments created against seed entries keep
// resolving across restarts.
func (s *ServiceStore) seed(ctx context.Context) {
	s.services = defaultServices()
	if err := s.persist(ctx); err != nil {
		s.logger.Warn("could not persist service seed data", "error", err)
	}
}

func (s *ServiceStore) Subscribe(fn func()) func() {
	return s.notifier.subscribe(fn)
}

// ListServices returns a copy of the catalog in insertion order.
func (s *ServiceStore) ListServices() []Service {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Service, len(s.services))
	copy(result, s.services)
	return result
}

// GetService returns the service with the given ID, or ok=false when absent.
func (s *ServiceStore) GetService(id uuid.UUID) (Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, svc := range s.services {
		if svc.ID == id {
			return svc, true
		}
	}
	return Service{}, false
}

// CreateService appends a new catalog entry. The ID is store-managed.
func (s *ServiceStore) CreateService(ctx context.Context, svc Service) (Service, error) {
	svc.ID = uuid.New()

	s.mu.Lock()
	next := make([]Service, len(s.services), len(s.services)+1)
	copy(next, s.services)
	s.services = append(next, svc)
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("service")
	s.notifier.notify()
	return svc, err
}

// UpdateService applies the non-nil patch fields to the matching service.
func (s *ServiceStore) UpdateService(ctx context.Context, id uuid.UUID, patch ServicePatch) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("service not found", "op", "update", "id", id)
		return ErrServiceNotFound
	}

	next := make([]Service, len(s.services))
	copy(next, s.services)
	if patch.Name != nil {
		next[i].Name = *patch.Name
	}
	if patch.Description != nil {
		next[i].Description = *patch.Description
	}
	if patch.Duration != nil {
		next[i].Duration = *patch.Duration
	}
	if patch.Price != nil {
		next[i].Price = *patch.Price
	}
	s.services = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("service")
	s.notifier.notify()
	return err
}

// DeleteService removes the matching catalog entry unconditionally.
func (s *ServiceStore) DeleteService(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("service not found", "op", "delete", "id", id)
		return ErrServiceNotFound
	}

	next := make([]Service, 0, len(s.services)-1)
	next = append(next, s.services[:i]...)
	next = append(next, s.services[i+1:]...)
	s.services = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("service")
	s.notifier.notify()
	return err
}

// indexOf must be called with the lock held.
func (s *ServiceStore) indexOf(id uuid.UUID) int {
	for i, svc := range s.services {
		if svc.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the lock held.
func (s *ServiceStore) persist(ctx context.Context) error {
	payload, err := encodeSnapshot(s.services)
	if err != nil {
		s.metrics.RecordSnapshotFailure()
		s.logger.Warn("services snapshot not persisted", "error", err)
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	if err := s.snapshots.Save(ctx, constants.SlotServices, payload); err != nil {
		s.metrics.RecordSnapshotFailure()
		s.logger.Warn("services snapshot not persisted", "error", err)
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	return nil
}
