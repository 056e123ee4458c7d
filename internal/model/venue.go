package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"
)

// ErrMalformedDocument is returned when a venue document is not valid JSON
// (or JSONC) at all.  Shape problems inside a well-formed document are
// reported by the normalizer instead.
var ErrMalformedDocument = errors.New("malformed venue document")

// Venue is the nested venue description: sections, each holding rows,
// each holding seats.  A nil Sections slice means the document carried no
// sections array; an empty one is a valid venue without seats.
type Venue struct {
	VenueID  string    `json:"venueId"`
	Name     string    `json:"name"`
	Map      MapSize   `json:"map"`
	Sections []Section `json:"sections"`
}

// MapSize is the bounding canvas of the venue.  It is passed through
// normalization untouched.
type MapSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Section is an independently positioned and scaled cluster of rows.
type Section struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Transform *Transform `json:"transform,omitempty"`
	Rows      []Row      `json:"rows"`
}

// Row groups the seats sharing a row number.  Index is not required to be
// contiguous or zero based, and Seats are not assumed sorted.
type Row struct {
	Index int    `json:"index"`
	Seats []Seat `json:"seats"`
}

// Transform maps section-local coordinates to venue coordinates:
// absolute = local*Scale + offset, per axis.
type Transform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// DefaultTransform is used for sections that carry no transform.
func DefaultTransform() Transform {
	return Transform{X: 0, Y: 0, Scale: 1}
}

// Apply maps a local point to venue coordinates.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.X, y*t.Scale + t.Y
}

// SeatCount counts every seat in the venue without validating anything.
func (v *Venue) SeatCount() int {
	n := 0
	for _, s := range v.Sections {
		for _, r := range s.Rows {
			n += len(r.Seats)
		}
	}
	return n
}

// DecodeVenue parses a venue document.  Comments and trailing commas are
// accepted so hand-edited layouts can be loaded as-is.
func DecodeVenue(data []byte) (*Venue, error) {
	var v Venue
	if err := json.Unmarshal(jsonc.ToJSON(data), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &v, nil
}
