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

// AppointmentStore owns the appointment ledger. It references customers,
// barbers and services by ID only and never validates those references;
// deleting a referenced entity leaves its appointments in place.
type AppointmentStore struct {
	mu           sync.RWMutex
	appointments []Appointment

	snapshots SnapshotStore
	logger    *slog.Logger
	metrics   Metrics
	notifier  notifier
}

// AppointmentPatch is a partial update: nil fields are left untouched.
type AppointmentPatch struct {
	CustomerID *uuid.UUID
	BarberID   *uuid.UUID
	ServiceID  *uuid.UUID
	Date       *time.Time
	Status     *Status
	Notes      *string
}

func NewAppointmentStore(ctx context.Context, opts Options) *AppointmentStore {
	s := &AppointmentStore{
		snapshots: opts.Snapshots,
		logger:    opts.logger(),
		metrics:   opts.metrics(),
	}

	payload, ok, err := s.snapshots.Load(ctx, constants.SlotAppointments)
	if err != nil {
		s.logger.Warn("could not load appointments snapshot, starting empty", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var items []Appointment
	if err := decodeSnapshot(payload, &items); err != nil {
		s.logger.Warn("could not decode appointments snapshot, starting empty", "error", err)
		return s
	}
	s.appointments = items
	return s
}

func (s *AppointmentStore) Subscribe(fn func()) func() {
	return s.notifier.subscribe(fn)
}

// ListAppointments returns a copy of the ledger in insertion order.
func (s *AppointmentStore) ListAppointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Appointment, len(s.appointments))
	copy(result, s.appointments)
	return result
}

// GetAppointment returns the appointment with the given ID, or ok=false when
// absent.
func (s *AppointmentStore) GetAppointment(id uuid.UUID) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}

// ListByDate returns appointments falling on the same local calendar day as
// day, in insertion order.
func (s *AppointmentStore) ListByDate(day time.Time) []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Appointment
	for _, a := range s.appointments {
		if SameDay(a.Date, day) {
			result = append(result, a)
		}
	}
	return result
}

// ListByCustomer returns appointments referencing the given customer ID.
func (s *AppointmentStore) ListByCustomer(customerID uuid.UUID) []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Appointment
	for _, a := range s.appointments {
		if a.CustomerID == customerID {
			result = append(result, a)
		}
	}
	return result
}

// ListByBarber returns appointments referencing the given barber ID.
func (s *AppointmentStore) ListByBarber(barberID uuid.UUID) []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Appointment
	for _, a := range s.appointments {
		if a.BarberID == barberID {
			result = append(result, a)
		}
	}
	return result
}

// CreateAppointment appends a new appointment. ID and CreatedAt are
// store-managed, and the initial status is always scheduled regardless of
// what the caller supplied.
func (s *AppointmentStore) CreateAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.Status = StatusScheduled

	s.mu.Lock()
	next := make([]Appointment, len(s.appointments), len(s.appointments)+1)
	copy(next, s.appointments)
	s.appointments = append(next, a)
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("appointment")
	s.notifier.notify()
	return a, err
}

// UpdateAppointment applies the non-nil patch fields to the matching
// appointment. A patched status must be one of the enumerated values.
func (s *AppointmentStore) UpdateAppointment(ctx context.Context, id uuid.UUID, patch AppointmentPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("appointment not found", "op", "update", "id", id)
		return ErrAppointmentNotFound
	}

	next := make([]Appointment, len(s.appointments))
	copy(next, s.appointments)
	if patch.CustomerID != nil {
		next[i].CustomerID = *patch.CustomerID
	}
	if patch.BarberID != nil {
		next[i].BarberID = *patch.BarberID
	}
	if patch.ServiceID != nil {
		next[i].ServiceID = *patch.ServiceID
	}
	if patch.Date != nil {
		next[i].Date = *patch.Date
	}
	if patch.Status != nil {
		next[i].Status = *patch.Status
	}
	if patch.Notes != nil {
		next[i].Notes = *patch.Notes
	}
	s.appointments = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("appointment")
	s.notifier.notify()
	return err
}

// UpdateStatus is a status-only convenience over UpdateAppointment with the
// same not-found semantics.
func (s *AppointmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.UpdateAppointment(ctx, id, AppointmentPatch{Status: &status})
}

// DeleteAppointment removes the matching appointment unconditionally.
func (s *AppointmentStore) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("appointment not found", "op", "delete", "id", id)
		return ErrAppointmentNotFound
	}

	next := make([]Appointment, 0, len(s.appointments)-1)
	next = append(next, s.appointments[:i]...)
	next = append(next, s.appointments[i+1:]...)
	s.appointments = next
	err := s.persist(ctx)
	s.mu.Unlock()

	s.metrics.RecordMutation("appointment")
	s.notifier.notify()
	return err
}

// indexOf must be called with the lock held.
func (s *AppointmentStore) indexOf(id uuid.UUID) int {
	for i, a := range s.appointments {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the lock held.
func (s *AppointmentStore) persist(ctx context.Context) error {
	payload, err := encodeSnapshot(s.appointments)
	if err != nil {
		s.metrics.RecordSnapshotFailure()
		s.logger.Warn("appointments snapshot not persisted", "error", err)
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	if err := s.snapshots.Save(ctx, constants.SlotAppointments, payload); err != nil {
		s.metrics.RecordSnapshotFailure()
		s.logger.Warn("appointments snapshot not persisted", "error", err)
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	return nil
}
