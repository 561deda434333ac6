package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pick-route-service/internal/domain"
)

func TestStaticSourceListPartLocations(t *testing.T) {
	src := NewStaticSource([]domain.PartLocation{
		{Location: "A1", PartID: 1, OrderNumber: "SMO-1"},
		{Location: "B2", PartID: 2, OrderNumber: "SMO-2"},
		{Location: "C3", PartID: 3, OrderNumber: "SMO-1"},
	})

	got, err := src.ListPartLocations(context.Background(), []string{"SMO-2", "SMO-1", "SMO-2", "SMO-9"})
	require.NoError(t, err)

	ids := make([]int64, len(got))
	for i, p := range got {
		ids[i] = p.PartID
	}
	assert.Equal(t, []int64{2, 1, 3}, ids)
}

func TestStaticSourceRejectsEmptyRequest(t *testing.T) {
	_, err := NewStaticSource(nil).ListPartLocations(context.Background(), nil)
	assert.Error(t, err)
}

func TestStaticSourceHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticSource(nil).ListPartLocations(ctx, []string{"SMO-1"})
	assert.ErrorIs(t, err, context.Canceled)
}
