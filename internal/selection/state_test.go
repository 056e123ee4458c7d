package selection

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-seatmap/internal/model"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
)

func venue(t *testing.T, id string, statuses ...model.SeatStatus) *seatmap.NormalizedVenue {
	t.Helper()
	seats := make([]model.Seat, 0, len(statuses))
	for i, st := range statuses {
		seats = append(seats, model.Seat{
			ID:        fmt.Sprintf("S-%d", i+1),
			Col:       model.Ptr(i + 1),
			X:         model.Ptr(float64(i) * 40),
			Y:         model.Ptr(0.0),
			PriceTier: i%3 + 1,
			Status:    st,
		})
	}
	v := &model.Venue{VenueID: id, Sections: []model.Section{{ID: "S", Rows: []model.Row{{Index: 1, Seats: seats}}}}}
	nv, err := seatmap.Normalize(v, seatmap.Options{PriceByTier: seatmap.PriceTable{
		1: decimal.NewFromInt(150),
		2: decimal.NewFromInt(100),
	}})
	require.NoError(t, err)
	return nv
}

func available(n int) []model.SeatStatus {
	out := make([]model.SeatStatus, n)
	for i := range out {
		out[i] = model.StatusAvailable
	}
	return out
}

func TestState_Toggle(t *testing.T) {
	nv := venue(t, "v1", model.StatusAvailable, model.StatusSold, model.StatusHeld)

	t.Run("Should select and deselect an available seat", func(t *testing.T) {
		s := New(2)
		on, err := s.Toggle(nv.SeatsByID["S-1"])
		require.NoError(t, err)
		assert.True(t, on)
		assert.True(t, s.IsSelected("S-1"))

		on, err = s.Toggle(nv.SeatsByID["S-1"])
		require.NoError(t, err)
		assert.False(t, on)
		assert.Empty(t, s.Selected())
	})

	t.Run("Should refuse seats that are not available", func(t *testing.T) {
		s := New(2)
		_, err := s.Toggle(nv.SeatsByID["S-2"])
		assert.ErrorIs(t, err, ErrSeatUnavailable)
		_, err = s.Toggle(nv.SeatsByID["S-3"])
		assert.ErrorIs(t, err, ErrSeatUnavailable)
		_, err = s.Toggle(nil)
		assert.ErrorIs(t, err, ErrUnknownSeat)
	})

	t.Run("Should stop at the limit", func(t *testing.T) {
		big := venue(t, "v2", available(3)...)
		s := New(2)
		for _, id := range []string{"S-1", "S-2"} {
			_, err := s.Toggle(big.SeatsByID[id])
			require.NoError(t, err)
		}
		assert.True(t, s.AtLimit())
		_, err := s.Toggle(big.SeatsByID["S-3"])
		assert.ErrorIs(t, err, ErrLimitReached)
		assert.Equal(t, []string{"S-1", "S-2"}, s.Selected())
	})
}

func TestState_Venue(t *testing.T) {
	t.Run("Should clear when switching venues", func(t *testing.T) {
		s := New(0)
		assert.Equal(t, DefaultMaxSeats, s.MaxSeats())
		s.SetVenue("a")
		require.NoError(t, s.Select("x"))
		s.SetVenue("a")
		assert.Equal(t, []string{"x"}, s.Selected())
		s.SetVenue("b")
		assert.Empty(t, s.Selected())
		assert.Equal(t, "b", s.VenueID())
	})

	t.Run("Should drop persisted seats that are gone or taken", func(t *testing.T) {
		nv := venue(t, "v1", model.StatusAvailable, model.StatusSold)
		s := Restore(8, "v1", []string{"S-1", "S-2", "S-9", "S-1"})
		assert.Equal(t, []string{"S-1", "S-2", "S-9"}, s.Selected())

		assert.True(t, s.Sync(nv))
		assert.Equal(t, []string{"S-1"}, s.Selected())
		assert.False(t, s.Sync(nv))
	})

	t.Run("Should cap restored selections at the limit", func(t *testing.T) {
		s := Restore(2, "v1", []string{"a", "b", "c"})
		assert.Equal(t, []string{"a", "b"}, s.Selected())
	})
}

func TestState_Total(t *testing.T) {
	nv := venue(t, "v1", available(3)...)
	s := New(8)
	for _, id := range []string{"S-1", "S-2", "S-3"} {
		require.NoError(t, s.Select(id))
	}
	total, unpriced := s.Total(nv)
	assert.True(t, total.Equal(decimal.NewFromInt(250)), total.String())
	assert.Equal(t, []string{"S-3"}, unpriced)

	s.Deselect("S-1")
	total, _ = s.Total(nv)
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}
