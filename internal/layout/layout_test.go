package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-seatmap/internal/model"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
)

func normalized(t *testing.T) *seatmap.NormalizedVenue {
	t.Helper()
	v := &model.Venue{VenueID: "v", Sections: []model.Section{
		{ID: "A", Rows: []model.Row{{Index: 1, Seats: []model.Seat{
			{ID: "a1", X: model.Ptr(10.0), Y: model.Ptr(20.0), PriceTier: 2, Status: model.StatusAvailable},
			{ID: "a2", X: model.Ptr(50.0), Y: model.Ptr(20.0), PriceTier: 1, Status: model.StatusSold},
		}}}},
		{ID: "B", Transform: &model.Transform{X: 100, Y: 200, Scale: 0.5}, Rows: []model.Row{{Index: 1, Seats: []model.Seat{
			{ID: "b1", X: model.Ptr(100.0), Y: model.Ptr(100.0), PriceTier: 2, Status: model.StatusAvailable},
		}}}},
	}}
	nv, err := seatmap.Normalize(v, seatmap.Options{})
	require.NoError(t, err)
	return nv
}

func TestComputeBounds(t *testing.T) {
	t.Run("Should measure absolute positions", func(t *testing.T) {
		b := ComputeBounds(normalized(t))
		assert.Equal(t, 10.0, b.MinX)
		assert.Equal(t, 150.0, b.MaxX)
		assert.Equal(t, 20.0, b.MinY)
		assert.Equal(t, 250.0, b.MaxY)
		assert.Equal(t, 140.0+2*SVGPadding, b.ViewBoxWidth)
		assert.Equal(t, 230.0+2*SVGPadding, b.ViewBoxHeight)
	})

	t.Run("Should return zero bounds for an empty venue", func(t *testing.T) {
		nv, err := seatmap.Normalize(&model.Venue{VenueID: "v", Sections: []model.Section{}}, seatmap.Options{})
		require.NoError(t, err)
		assert.Equal(t, Bounds{}, ComputeBounds(nv))
	})
}

func TestSummaries(t *testing.T) {
	nv := normalized(t)
	assert.Equal(t, []TierCount{{Tier: 1, Seats: 1}, {Tier: 2, Seats: 2}}, TierSummary(nv))
	assert.Equal(t, map[model.SeatStatus]int{model.StatusAvailable: 2, model.StatusSold: 1}, StatusCounts(nv))
}
