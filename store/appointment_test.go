package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStore_CreateForcesScheduled(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore(ctx, testOptions(newMemSnapshots()))

	created, err := s.CreateAppointment(ctx, Appointment{
		CustomerID: uuid.New(),
		BarberID:   uuid.New(),
		ServiceID:  uuid.New(),
		Date:       mustParseLocal(t, "2025-03-14 10:00"),
		// Callers cannot pick the initial status
		Status: StatusCompleted,
	})
	require.NoError(t, err)
	require.Equal(t, StatusScheduled, created.Status)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.WithinDuration(t, time.Now(), created.CreatedAt, time.Second)

	got, ok := s.GetAppointment(created.ID)
	require.True(t, ok)
	require.Equal(t, created, got)
}

func TestAppointmentStore_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore(ctx, testOptions(newMemSnapshots()))

	created, err := s.CreateAppointment(ctx, Appointment{
		CustomerID: uuid.New(),
		BarberID:   uuid.New(),
		ServiceID:  uuid.New(),
		Date:       mustParseLocal(t, "2025-03-14 10:00"),
		Notes:      "primeira visita",
	})
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(ctx, created.ID, StatusCompleted))

	got, ok := s.GetAppointment(created.ID)
	require.True(t, ok)
	require.Equal(t, StatusCompleted, got.Status)

	// Only the status changed
	require.Equal(t, created.CustomerID, got.CustomerID)
	require.Equal(t, created.BarberID, got.BarberID)
	require.Equal(t, created.ServiceID, got.ServiceID)
	require.Equal(t, created.Date, got.Date)
	require.Equal(t, created.Notes, got.Notes)
	require.Equal(t, created.CreatedAt, got.CreatedAt)

	require.ErrorIs(t, s.UpdateStatus(ctx, uuid.New(), StatusCancelled), ErrAppointmentNotFound)
	require.ErrorIs(t, s.UpdateStatus(ctx, created.ID, Status("pending")), ErrInvalidStatus)
}

func TestAppointmentStore_ListByDate(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore(ctx, testOptions(newMemSnapshots()))

	morning, err := s.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-14 09:00")})
	require.NoError(t, err)
	evening, err := s.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-14 19:30")})
	require.NoError(t, err)
	_, err = s.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-15 09:00")})
	require.NoError(t, err)

	sameDay := s.ListByDate(mustParseLocal(t, "2025-03-14 12:00"))
	require.Len(t, sameDay, 2)
	require.Equal(t, morning.ID, sameDay[0].ID)
	require.Equal(t, evening.ID, sameDay[1].ID)

	require.Empty(t, s.ListByDate(mustParseLocal(t, "2025-03-16 12:00")))
}

func TestAppointmentStore_ListByReference(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore(ctx, testOptions(newMemSnapshots()))

	customer := uuid.New()
	barber := uuid.New()

	first, err := s.CreateAppointment(ctx, Appointment{CustomerID: customer, BarberID: barber, Date: mustParseLocal(t, "2025-03-14 09:00")})
	require.NoError(t, err)
	second, err := s.CreateAppointment(ctx, Appointment{CustomerID: customer, BarberID: uuid.New(), Date: mustParseLocal(t, "2025-03-20 09:00")})
	require.NoError(t, err)
	_, err = s.CreateAppointment(ctx, Appointment{CustomerID: uuid.New(), BarberID: barber, Date: mustParseLocal(t, "2025-03-21 09:00")})
	require.NoError(t, err)

	byCustomer := s.ListByCustomer(customer)
	require.Len(t, byCustomer, 2)
	require.Equal(t, first.ID, byCustomer[0].ID)
	require.Equal(t, second.ID, byCustomer[1].ID)

	byBarber := s.ListByBarber(barber)
	require.Len(t, byBarber, 2)

	require.Empty(t, s.ListByCustomer(uuid.New()))
}

func TestAppointmentStore_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore(ctx, testOptions(newMemSnapshots()))

	created, err := s.CreateAppointment(ctx, Appointment{
		CustomerID: uuid.New(),
		BarberID:   uuid.New(),
		ServiceID:  uuid.New(),
		Date:       mustParseLocal(t, "2025-03-14 10:00"),
	})
	require.NoError(t, err)

	rescheduled := mustParseLocal(t, "2025-03-18 16:00")
	notes := "remarcado a pedido do cliente"
	require.NoError(t, s.UpdateAppointment(ctx, created.ID, AppointmentPatch{
		Date:  &rescheduled,
		Notes: &notes,
	}))

	got, ok := s.GetAppointment(created.ID)
	require.True(t, ok)
	require.Equal(t, rescheduled, got.Date)
	require.Equal(t, notes, got.Notes)
	require.Equal(t, created.CustomerID, got.CustomerID)
	require.Equal(t, StatusScheduled, got.Status)
}

func TestAppointmentStore_DeleteIgnoresReferences(t *testing.T) {
	ctx := context.Background()
	snapshots := newMemSnapshots()
	s := NewAppointmentStore(ctx, testOptions(snapshots))

	keep, err := s.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-14 09:00")})
	require.NoError(t, err)
	drop, err := s.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-14 10:00")})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAppointment(ctx, drop.ID))
	require.Len(t, s.ListAppointments(), 1)

	_, ok := s.GetAppointment(keep.ID)
	require.True(t, ok)

	require.ErrorIs(t, s.DeleteAppointment(ctx, drop.ID), ErrAppointmentNotFound)
}

func TestAppointmentStore_Rehydration(t *testing.T) {
	ctx := context.Background()
	snapshots := newMemSnapshots()

	s1 := NewAppointmentStore(ctx, testOptions(snapshots))
	created, err := s1.CreateAppointment(ctx, Appointment{
		CustomerID: uuid.New(),
		Date:       mustParseLocal(t, "2025-03-14 10:00"),
		Notes:      "corte e barba",
	})
	require.NoError(t, err)

	s2 := NewAppointmentStore(ctx, testOptions(snapshots))
	got, ok := s2.GetAppointment(created.ID)
	require.True(t, ok)
	require.Equal(t, created.CustomerID, got.CustomerID)
	require.Equal(t, created.Notes, got.Notes)
	require.True(t, got.Date.Equal(created.Date))
	require.Equal(t, StatusScheduled, got.Status)
}
