package seatmap

import (
	"cmp"
	"slices"
)

// sortRowSeats orders a row by col.  The comparison falls back to x for any
// pair in which either seat has no col.
func sortRowSeats(seats []RowSeat) {
	slices.SortStableFunc(seats, compareRowSeats)
}

func compareRowSeats(a, b RowSeat) int {
	if a.Col != nil && b.Col != nil {
		return cmp.Compare(*a.Col, *b.Col)
	}
	return cmp.Compare(a.X, b.X)
}

// sortRows orders a section's rows by row index.  Gaps in the numbering
// are kept.
func sortRows(rows []RowSeats) {
	slices.SortStableFunc(rows, func(a, b RowSeats) int {
		return cmp.Compare(a.RowIndex, b.RowIndex)
	})
}
