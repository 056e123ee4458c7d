package seatmap

import "math"

// buildNeighbors derives left/right/up/down for every seat from the
// already sorted rows.  Up and down look at the adjacent row in sorted
// order, not at rowIndex±1.  Edges are not forced to be symmetric.
func buildNeighbors(order []string, rowsBySection map[string][]RowSeats, size int) map[string]Neighbors {
	out := make(map[string]Neighbors, size)
	for _, sectionID := range order {
		rows := rowsBySection[sectionID]
		for r, row := range rows {
			for i, seat := range row.Seats {
				var n Neighbors
				if i > 0 {
					n.Left = row.Seats[i-1].ID
				}
				if i < len(row.Seats)-1 {
					n.Right = row.Seats[i+1].ID
				}
				if r > 0 {
					if up, ok := nearestInRow(rows[r-1].Seats, seat.Col, seat.X); ok {
						n.Up = up.ID
					}
				}
				if r < len(rows)-1 {
					if down, ok := nearestInRow(rows[r+1].Seats, seat.Col, seat.X); ok {
						n.Down = down.ID
					}
				}
				out[seat.ID] = n
			}
		}
	}
	return out
}

// nearestInRow finds the seat of row matching col exactly, or failing that
// the one whose x is closest to x.  Ties keep the first seat found.
func nearestInRow(row []RowSeat, col *int, x float64) (RowSeat, bool) {
	if len(row) == 0 {
		return RowSeat{}, false
	}
	if col != nil {
		for _, s := range row {
			if s.Col != nil && *s.Col == *col {
				return s, true
			}
		}
	}
	best := row[0]
	bestDist := math.Abs(row[0].X - x)
	for _, s := range row[1:] {
		if d := math.Abs(s.X - x); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}
