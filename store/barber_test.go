package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBarberStore_SeedsDefaultRoster(t *testing.T) {
	ctx := context.Background()
	s := NewBarberStore(ctx, testOptions(newMemSnapshots()))

	barbers := s.ListBarbers()
	require.Len(t, barbers, 2)
	require.Equal(t, "João Silva", barbers[0].Name)
	require.Equal(t, "Pedro Santos", barbers[1].Name)
	require.True(t, barbers[0].IsActive)
	require.True(t, barbers[1].IsActive)
}

func TestBarberStore_ToggleActive(t *testing.T) {
	ctx := context.Background()
	s := NewBarberStore(ctx, testOptions(newMemSnapshots()))

	target := s.ListBarbers()[0]
	require.True(t, target.IsActive)

	require.NoError(t, s.ToggleActive(ctx, target.ID))
	got, ok := s.GetBarber(target.ID)
	require.True(t, ok)
	require.False(t, got.IsActive)

	// Toggling twice restores the original value
	require.NoError(t, s.ToggleActive(ctx, target.ID))
	got, ok = s.GetBarber(target.ID)
	require.True(t, ok)
	require.True(t, got.IsActive)

	require.ErrorIs(t, s.ToggleActive(ctx, uuid.New()), ErrBarberNotFound)
}

func TestBarberStore_ActiveBarbers(t *testing.T) {
	ctx := context.Background()
	s := NewBarberStore(ctx, testOptions(newMemSnapshots()))

	require.Len(t, s.ActiveBarbers(), 2)

	first := s.ListBarbers()[0]
	require.NoError(t, s.ToggleActive(ctx, first.ID))

	active := s.ActiveBarbers()
	require.Len(t, active, 1)
	require.NotEqual(t, first.ID, active[0].ID)
}

func TestBarberStore_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := NewBarberStore(ctx, testOptions(newMemSnapshots()))

	created, err := s.CreateBarber(ctx, Barber{
		Name:      "Carlos Souza",
		Specialty: "Degradê",
		IsActive:  true,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Len(t, s.ListBarbers(), 3)

	specialty := "Navalhado"
	require.NoError(t, s.UpdateBarber(ctx, created.ID, BarberPatch{Specialty: &specialty}))

	got, ok := s.GetBarber(created.ID)
	require.True(t, ok)
	require.Equal(t, "Navalhado", got.Specialty)
	require.Equal(t, created.Name, got.Name)
	require.True(t, got.IsActive)

	require.NoError(t, s.DeleteBarber(ctx, created.ID))
	require.Len(t, s.ListBarbers(), 2)
	_, ok = s.GetBarber(created.ID)
	require.False(t, ok)
}
