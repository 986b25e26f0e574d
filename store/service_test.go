package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestServiceStore_SeedsDefaultCatalog(t *testing.T) {
	ctx := context.Background()
	snapshots := newMemSnapshots()

	s := NewServiceStore(ctx, testOptions(snapshots))

	services := s.ListServices()
	require.Len(t, services, 4)
	require.Equal(t, "Corte Masculino", services[0].Name)
	require.Equal(t, "Barba", services[1].Name)
	require.Equal(t, 25.0, services[1].Price)
	require.Equal(t, "Corte + Barba", services[2].Name)
	require.Equal(t, "Corte Infantil", services[3].Name)

	// The seed is persisted right away, so a restart keeps the same IDs
	s2 := NewServiceStore(ctx, testOptions(snapshots))
	require.Equal(t, services[0].ID, s2.ListServices()[0].ID)
}

func TestServiceStore_NeverReseeds(t *testing.T) {
	ctx := context.Background()
	snapshots := newMemSnapshots()

	s := NewServiceStore(ctx, testOptions(snapshots))
	for _, svc := range s.ListServices() {
		require.NoError(t, s.DeleteService(ctx, svc.ID))
	}
	require.Empty(t, s.ListServices())

	// An emptied catalog stays empty across restarts
	s2 := NewServiceStore(ctx, testOptions(snapshots))
	require.Empty(t, s2.ListServices())
}

func TestServiceStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewServiceStore(ctx, testOptions(newMemSnapshots()))

	created, err := s.CreateService(ctx, Service{
		Name:        "Sobrancelha",
		Description: "Design de sobrancelha",
		Duration:    15,
		Price:       15,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, ok := s.GetService(created.ID)
	require.True(t, ok)
	require.Equal(t, created, got)

	// Appended after the seeds, insertion order preserved
	services := s.ListServices()
	require.Len(t, services, 5)
	require.Equal(t, created.ID, services[4].ID)
}

func TestServiceStore_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	s := NewServiceStore(ctx, testOptions(newMemSnapshots()))

	target := s.ListServices()[1]

	price := 30.0
	require.NoError(t, s.UpdateService(ctx, target.ID, ServicePatch{Price: &price}))

	got, ok := s.GetService(target.ID)
	require.True(t, ok)
	require.Equal(t, 30.0, got.Price)
	require.Equal(t, target.Name, got.Name)
	require.Equal(t, target.Description, got.Description)
	require.Equal(t, target.Duration, got.Duration)
}

func TestServiceStore_UnknownID(t *testing.T) {
	ctx := context.Background()
	s := NewServiceStore(ctx, testOptions(newMemSnapshots()))

	name := "x"
	require.ErrorIs(t, s.UpdateService(ctx, uuid.New(), ServicePatch{Name: &name}), ErrServiceNotFound)
	require.ErrorIs(t, s.DeleteService(ctx, uuid.New()), ErrServiceNotFound)
	require.Len(t, s.ListServices(), 4)
}
