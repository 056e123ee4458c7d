// Package seatmap turns a nested venue description into flat, indexed
// lookup structures: a seat index, per-section sorted rows, a flat seat
// list in traversal order, an optional directional neighbor graph for
// keyboard navigation and a tier price lookup.
//
// A NormalizedVenue is built once per Normalize call and is read-only
// afterwards.  When the source venue changes the whole value is replaced.
package seatmap

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-seatmap/internal/model"
)

// PriceTable maps a tier key to its price.
type PriceTable map[int]decimal.Decimal

// Options tunes a normalization run.
type Options struct {
	PriceByTier         PriceTable // consulted by Price; nil means no prices
	PrecomputeNeighbors bool       // build the neighbor graph
}

// SeatMeta is a seat plus the section and row context it was found in.
type SeatMeta struct {
	ID           string           `json:"id"`
	SectionID    string           `json:"sectionId"`
	SectionLabel string           `json:"sectionLabel"`
	RowIndex     int              `json:"rowIndex"`
	Col          *int             `json:"col,omitempty"`
	X            float64          `json:"x"`
	Y            float64          `json:"y"`
	Status       model.SeatStatus `json:"status"`
	PriceTier    int              `json:"priceTier"`
	Transform    model.Transform  `json:"transform"`
}

// Absolute returns the seat position on the venue canvas.
func (m *SeatMeta) Absolute() (float64, float64) {
	return m.Transform.Apply(m.X, m.Y)
}

// RowSeat is the lightweight per-row record used for ordering and
// navigation.
type RowSeat struct {
	ID  string  `json:"id"`
	Col *int    `json:"col,omitempty"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// RowSeats is one row of a section with its seats sorted by col (or x).
type RowSeats struct {
	RowIndex int       `json:"rowIndex"`
	Seats    []RowSeat `json:"seats"`
}

// SectionInfo summarises a section without its rows.
type SectionInfo struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Transform model.Transform `json:"transform"`
}

// Neighbors holds the directional neighbors of a seat.  An empty string
// means there is no neighbor in that direction; seat ids are never empty.
type Neighbors struct {
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
	Up    string `json:"up,omitempty"`
	Down  string `json:"down,omitempty"`
}

// NormalizedVenue is the output of Normalize.
type NormalizedVenue struct {
	VenueID  string
	Name     string
	Map      model.MapSize
	Sections []SectionInfo

	SeatsByID     map[string]*SeatMeta
	RowsBySection map[string][]RowSeats
	FlatSeats     []*SeatMeta
	// Neighbors is nil unless Options.PrecomputeNeighbors was set.
	Neighbors map[string]Neighbors

	prices PriceTable
}

// Seat looks a seat up by id.
func (nv *NormalizedVenue) Seat(id string) (*SeatMeta, bool) {
	m, ok := nv.SeatsByID[id]
	return m, ok
}

// Rows returns the sorted rows of a section, or nil for unknown sections.
func (nv *NormalizedVenue) Rows(sectionID string) []RowSeats {
	return nv.RowsBySection[sectionID]
}

// HasNeighbors reports whether the neighbor graph was computed.
func (nv *NormalizedVenue) HasNeighbors() bool {
	return nv.Neighbors != nil
}

// NeighborsOf returns the neighbors of a seat.  ok is false when the graph
// was not computed or the seat is unknown.
func (nv *NormalizedVenue) NeighborsOf(id string) (Neighbors, bool) {
	if nv.Neighbors == nil {
		return Neighbors{}, false
	}
	n, ok := nv.Neighbors[id]
	return n, ok
}

// SeatCount is the number of seats in the venue.
func (nv *NormalizedVenue) SeatCount() int {
	return len(nv.FlatSeats)
}
