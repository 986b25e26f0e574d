package cli

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestReferenceOptions(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	labels := []string{"Ana", "Bruno", "Carla"}

	t.Run("no current selects first", func(t *testing.T) {
		gotLabels, gotIDs, idx := referenceOptions(labels, ids, uuid.Nil, "", false)
		require.Equal(t, labels, gotLabels)
		require.Equal(t, ids, gotIDs)
		require.Equal(t, 0, idx)
	})

	t.Run("current in set selects its index", func(t *testing.T) {
		gotLabels, gotIDs, idx := referenceOptions(labels, ids, ids[2], "Carla", true)
		require.Equal(t, labels, gotLabels)
		require.Equal(t, ids, gotIDs)
		require.Equal(t, 2, idx)
	})

	t.Run("missing current is prepended", func(t *testing.T) {
		gone := uuid.New()
		gotLabels, gotIDs, idx := referenceOptions(labels, ids, gone, "Daniel (inativo)", true)
		require.Equal(t, 0, idx)
		require.Len(t, gotLabels, 4)
		require.Equal(t, "Daniel (inativo)", gotLabels[0])
		require.Equal(t, gone, gotIDs[0])
		require.Equal(t, ids, gotIDs[1:])
	})
}
