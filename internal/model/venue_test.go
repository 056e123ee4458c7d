package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVenue(t *testing.T) {
	t.Run("Should keep absent sequences nil and empty ones non-nil", func(t *testing.T) {
		v, err := DecodeVenue([]byte(`{"venueId":"v","sections":[{"id":"A","rows":[{"index":1,"seats":[]}]},{"id":"B"}]}`))
		require.NoError(t, err)
		require.Len(t, v.Sections, 2)
		assert.NotNil(t, v.Sections[0].Rows[0].Seats)
		assert.Nil(t, v.Sections[1].Rows)
		assert.Nil(t, v.Sections[0].Transform)

		v, err = DecodeVenue([]byte(`{"venueId":"v"}`))
		require.NoError(t, err)
		assert.Nil(t, v.Sections)
	})

	t.Run("Should decode seats with optional numbers", func(t *testing.T) {
		v, err := DecodeVenue([]byte(`{"venueId":"v","sections":[{"id":"A","transform":{"x":5,"y":6,"scale":2},"rows":[{"index":1,"seats":[
			{"id":"a","col":2,"x":1.5,"y":3,"priceTier":2,"status":"held"},
			{"id":"b","x":"oops","y":null,"status":"sold"},
			{"id":"c","col":1.5,"x":1,"y":1,"status":"sold"}
		]}]}]}`))
		require.NoError(t, err)
		seats := v.Sections[0].Rows[0].Seats

		require.NotNil(t, seats[0].Col)
		assert.Equal(t, 2, *seats[0].Col)
		assert.Equal(t, 1.5, *seats[0].X)
		assert.Equal(t, 2, seats[0].PriceTier)
		assert.Equal(t, StatusHeld, seats[0].Status)

		assert.Nil(t, seats[1].Col)
		assert.Nil(t, seats[1].X)
		assert.Nil(t, seats[1].Y)

		assert.Nil(t, seats[2].Col, "fractional col is not a seat number")
		assert.Equal(t, &Transform{X: 5, Y: 6, Scale: 2}, v.Sections[0].Transform)
	})

	t.Run("Should drop fractional and out of range price tiers", func(t *testing.T) {
		v, err := DecodeVenue([]byte(`{"venueId":"v","sections":[{"id":"A","rows":[{"index":1,"seats":[
			{"id":"a","x":1,"y":1,"priceTier":1.9,"status":"sold"},
			{"id":"b","x":1,"y":1,"priceTier":1e20,"status":"sold"},
			{"id":"c","x":1,"y":1,"priceTier":-3000000000,"status":"sold"},
			{"id":"d","x":1,"y":1,"priceTier":3.0,"status":"sold"},
			{"id":"e","col":1e20,"x":1,"y":1,"status":"sold"}
		]}]}]}`))
		require.NoError(t, err)
		seats := v.Sections[0].Rows[0].Seats

		assert.Zero(t, seats[0].PriceTier)
		assert.Zero(t, seats[1].PriceTier)
		assert.Zero(t, seats[2].PriceTier)
		assert.Equal(t, 3, seats[3].PriceTier)
		assert.Nil(t, seats[4].Col)
	})

	t.Run("Should decode mistyped id and status without failing the document", func(t *testing.T) {
		v, err := DecodeVenue([]byte(`{"venueId":"v","sections":[{"id":"A","rows":[{"index":1,"seats":[
			{"id":"A-1","x":1,"y":1,"status":7},
			{"id":5,"x":1,"y":1,"status":"sold"},
			{"id":"A-3","x":1,"y":1,"status":null},
			{"id":"A-4","x":1,"y":1,"status":{"code":1}}
		]}]}]}`))
		require.NoError(t, err)
		seats := v.Sections[0].Rows[0].Seats

		assert.Equal(t, SeatStatus("7"), seats[0].Status)
		assert.Equal(t, "", seats[1].ID)
		assert.Equal(t, StatusSold, seats[1].Status)
		assert.Equal(t, SeatStatus(""), seats[2].Status)
		assert.Equal(t, SeatStatus(`{"code":1}`), seats[3].Status)
	})

	t.Run("Should accept comments and trailing commas", func(t *testing.T) {
		v, err := DecodeVenue([]byte("{\n// arena\n\"venueId\": \"v\", \"sections\": [],\n}"))
		require.NoError(t, err)
		assert.Equal(t, "v", v.VenueID)
	})

	t.Run("Should reject malformed documents", func(t *testing.T) {
		_, err := DecodeVenue([]byte(`{"venueId": `))
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

func TestSeatStatus_Valid(t *testing.T) {
	for _, s := range []SeatStatus{StatusAvailable, StatusReserved, StatusSold, StatusHeld} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, SeatStatus("foo").Valid())
	assert.False(t, SeatStatus("").Valid())
	assert.False(t, SeatStatus("AVAILABLE").Valid())
}

func TestTransform_Apply(t *testing.T) {
	x, y := Transform{X: 200, Y: 100, Scale: 0.5}.Apply(40, 20)
	assert.Equal(t, 220.0, x)
	assert.Equal(t, 110.0, y)

	x, y = DefaultTransform().Apply(3, 4)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
}

func TestSeat_String(t *testing.T) {
	s := Seat{ID: "a", X: Ptr(1.0), Status: StatusSold}
	assert.Equal(t, `{"id":"a","x":1,"y":null,"priceTier":0,"status":"sold"}`, s.String())
}
