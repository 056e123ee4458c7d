package seatmap

import (
	"fmt"

	"github.com/iliyamo/venue-seatmap/internal/model"
)

// Normalize validates v and builds its lookup structures in a single pass
// over sections, rows and seats.  Any validation failure aborts the whole
// call; a partially built venue is never returned.  v is not modified.
func Normalize(v *model.Venue, opts Options) (*NormalizedVenue, error) {
	if v == nil || v.VenueID == "" || v.Sections == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrStructure)
	}

	total := v.SeatCount()
	nv := &NormalizedVenue{
		VenueID:       v.VenueID,
		Name:          v.Name,
		Map:           v.Map,
		Sections:      make([]SectionInfo, 0, len(v.Sections)),
		SeatsByID:     make(map[string]*SeatMeta, total),
		RowsBySection: make(map[string][]RowSeats, len(v.Sections)),
		FlatSeats:     make([]*SeatMeta, 0, total),
		prices:        opts.PriceByTier.clone(),
	}

	// sections in first-seen order; ids are not checked for uniqueness so
	// two sections with the same id share one row list
	order := make([]string, 0, len(v.Sections))

	for i := range v.Sections {
		section := &v.Sections[i]
		if section.ID == "" || section.Rows == nil {
			id := section.ID
			if id == "" {
				id = "unknown"
			}
			return nil, fmt.Errorf("%w: invalid section structure in section %s", ErrStructure, id)
		}

		transform := model.DefaultTransform()
		if section.Transform != nil {
			transform = *section.Transform
		}
		nv.Sections = append(nv.Sections, SectionInfo{ID: section.ID, Label: section.Label, Transform: transform})

		if _, seen := nv.RowsBySection[section.ID]; !seen {
			nv.RowsBySection[section.ID] = []RowSeats{}
			order = append(order, section.ID)
		}

		for j := range section.Rows {
			row := &section.Rows[j]
			if row.Seats == nil {
				return nil, fmt.Errorf("%w: invalid row structure in section %s, row %d", ErrStructure, section.ID, row.Index)
			}

			rowSeats := make([]RowSeat, 0, len(row.Seats))
			for k := range row.Seats {
				meta, err := indexSeat(nv, section, row.Index, transform, &row.Seats[k])
				if err != nil {
					return nil, err
				}
				rowSeats = append(rowSeats, RowSeat{ID: meta.ID, Col: meta.Col, X: meta.X, Y: meta.Y})
			}

			sortRowSeats(rowSeats)
			nv.RowsBySection[section.ID] = append(nv.RowsBySection[section.ID], RowSeats{RowIndex: row.Index, Seats: rowSeats})
		}
	}

	for _, id := range order {
		sortRows(nv.RowsBySection[id])
	}

	if opts.PrecomputeNeighbors {
		nv.Neighbors = buildNeighbors(order, nv.RowsBySection, total)
	}
	return nv, nil
}

// indexSeat validates one seat and records it in the seat index and the
// flat list.
func indexSeat(nv *NormalizedVenue, section *model.Section, rowIndex int, transform model.Transform, seat *model.Seat) (*SeatMeta, error) {
	if seat.ID == "" || seat.X == nil || seat.Y == nil {
		return nil, fmt.Errorf("%w: invalid seat data: %s", ErrInvalidSeat, seat)
	}
	if !seat.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid seat status: %s for seat %s", ErrInvalidSeat, seat.Status, seat.ID)
	}
	if _, dup := nv.SeatsByID[seat.ID]; dup {
		return nil, fmt.Errorf("%w found: %s", ErrDuplicateSeat, seat.ID)
	}

	meta := &SeatMeta{
		ID:           seat.ID,
		SectionID:    section.ID,
		SectionLabel: section.Label,
		RowIndex:     rowIndex,
		Col:          copyInt(seat.Col),
		X:            *seat.X,
		Y:            *seat.Y,
		Status:       seat.Status,
		PriceTier:    seat.PriceTier,
		Transform:    transform,
	}
	nv.SeatsByID[meta.ID] = meta
	nv.FlatSeats = append(nv.FlatSeats, meta)
	return meta, nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
