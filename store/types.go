package store

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

// Statuses lists every valid appointment status, in display order.
func Statuses() []Status {
	return []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

type Customer struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"createdAt"`
	TotalVisits int        `json:"totalVisits"`
	LastVisit   *time.Time `json:"lastVisit,omitempty"`
}

type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// Duration is the slot length in minutes.
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

type Barber struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Specialty string    `json:"specialty"`
	IsActive  bool      `json:"isActive"`
}

// Appointment references its customer, barber and service by ID only. The
// references are weak: deleting the referenced entity leaves the appointment
// untouched, so lookups must tolerate a missing target.
type Appointment struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	BarberID   uuid.UUID `json:"barberId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	Date       time.Time `json:"date"`
	Status     Status    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Custom error types for better error handling
var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrBarberNotFound      = errors.New("barber not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSnapshotWrite signals that a mutation was applied in memory but
	// could not be made durable. Callers should treat it as a warning,
	// not roll anything back.
	ErrSnapshotWrite = errors.New("snapshot write failed")

	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Metrics receives store-level counters. The telemetry package provides the
// production implementation.
type Metrics interface {
	RecordMutation(entity string)
	RecordSnapshotFailure()
}

type noopMetrics struct{}

func (noopMetrics) RecordMutation(string)  {}
func (noopMetrics) RecordSnapshotFailure() {}

// Options groups the shared dependencies of all four stores.
type Options struct {
	Snapshots SnapshotStore
	Logger    *slog.Logger
	Metrics   Metrics
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) metrics() Metrics {
	if o.Metrics != nil {
		return o.Metrics
	}
	return noopMetrics{}
}

// SameDay reports whether a and b fall on the same calendar day in local time.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
