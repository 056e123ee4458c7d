package model

import (
	"bytes"
	"encoding/json"
	"math"
)

// SeatStatus is the availability state of a seat as published by the venue
// source.  Only the four values below are recognised; anything else is a
// validation error during normalization.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available" // free to select
	StatusReserved  SeatStatus = "reserved"  // reserved by someone else
	StatusSold      SeatStatus = "sold"      // already purchased
	StatusHeld      SeatStatus = "held"      // temporarily held
)

// Valid reports whether s is one of the recognised statuses.
func (s SeatStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold, StatusHeld:
		return true
	}
	return false
}

// Seat describes one seat inside a row.  Positions are local to the
// enclosing section; the section transform maps them onto the venue canvas.
//
// Fields:
//  ID        – venue-wide unique identifier (e.g. A-1-01).
//  Col       – seat number within the row; nil when absent or not an integer.
//  X, Y      – local coordinates; nil when absent or non-numeric.
//  PriceTier – tier key, looked up in a caller supplied price table; 0 when
//              absent or not an integer.
//  Status    – availability state.
type Seat struct {
	ID        string     `json:"id"`
	Col       *int       `json:"col,omitempty"`
	X         *float64   `json:"x"`
	Y         *float64   `json:"y"`
	PriceTier int        `json:"priceTier"`
	Status    SeatStatus `json:"status"`
}

// seatWire mirrors Seat with raw fields so that a seat carrying the wrong
// JSON type still decodes and can be reported by the normalizer with its
// full payload.
type seatWire struct {
	ID        json.RawMessage `json:"id"`
	Col       json.RawMessage `json:"col"`
	X         json.RawMessage `json:"x"`
	Y         json.RawMessage `json:"y"`
	PriceTier json.RawMessage `json:"priceTier"`
	Status    json.RawMessage `json:"status"`
}

// UnmarshalJSON decodes a seat without failing the whole document on a
// mistyped field.  A non-string id becomes empty.  A non-string status keeps
// its raw literal so the normalizer can name it.  Absent, non-numeric or
// non-integral col/x/y/priceTier are treated as missing.
func (s *Seat) UnmarshalJSON(data []byte) error {
	var w seatWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.ID = ""
	if id, ok := rawString(w.ID); ok {
		s.ID = id
	}
	s.Status = ""
	if st, ok := rawString(w.Status); ok {
		s.Status = SeatStatus(st)
	} else if lit := bytes.TrimSpace(w.Status); len(lit) > 0 && !bytes.Equal(lit, []byte("null")) {
		s.Status = SeatStatus(lit)
	}
	s.X = rawNumber(w.X)
	s.Y = rawNumber(w.Y)
	s.Col = rawInt(w.Col)
	s.PriceTier = 0
	if t := rawInt(w.PriceTier); t != nil {
		s.PriceTier = *t
	}
	return nil
}

// String renders the seat as JSON for diagnostics.
func (s Seat) String() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func rawNumber(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func rawString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}

// rawInt accepts only integral numbers inside the int32 range.
func rawInt(raw json.RawMessage) *int {
	f := rawNumber(raw)
	if f == nil || *f != math.Trunc(*f) || *f < math.MinInt32 || *f > math.MaxInt32 {
		return nil
	}
	v := int(*f)
	return &v
}

// Ptr returns a pointer to v.  It keeps seat literals in tests and
// generators readable.
func Ptr[T any](v T) *T {
	return &v
}
