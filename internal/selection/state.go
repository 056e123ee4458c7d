// Package selection tracks the seats a user has picked on a venue.  A State
// is owned by whoever owns the session (an HTTP request scope, a test) and
// is passed explicitly; there is no process-wide selection.
package selection

import (
	"errors"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-seatmap/internal/model"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
)

// DefaultMaxSeats is the selection limit used when none is configured.
const DefaultMaxSeats = 8

var (
	// ErrSeatUnavailable is returned when toggling a seat that is not available.
	ErrSeatUnavailable = errors.New("seat is not available")
	// ErrLimitReached is returned when selecting beyond the seat limit.
	ErrLimitReached = errors.New("selection limit reached")
	// ErrUnknownSeat is returned when a seat id is not part of the venue.
	ErrUnknownSeat = errors.New("unknown seat")
)

// State is one session's selection.  It is safe for concurrent use.
type State struct {
	mu       sync.Mutex
	maxSeats int
	venueID  string
	seats    []string
}

// New returns an empty selection limited to maxSeats (DefaultMaxSeats when
// maxSeats < 1).
func New(maxSeats int) *State {
	if maxSeats < 1 {
		maxSeats = DefaultMaxSeats
	}
	return &State{maxSeats: maxSeats}
}

// Restore builds a State from persisted ids.  Ids beyond the limit and
// repeated ids are dropped.
func Restore(maxSeats int, venueID string, ids []string) *State {
	s := New(maxSeats)
	s.venueID = venueID
	for _, id := range ids {
		if len(s.seats) >= s.maxSeats {
			break
		}
		if id != "" && !slices.Contains(s.seats, id) {
			s.seats = append(s.seats, id)
		}
	}
	return s
}

// VenueID returns the venue the selection belongs to.
func (s *State) VenueID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.venueID
}

// SetVenue binds the selection to a venue.  Switching from one venue to
// another clears the selection.
func (s *State) SetVenue(venueID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venueID != "" && s.venueID != venueID {
		s.seats = nil
	}
	s.venueID = venueID
}

// Select adds id unless the limit is reached; selecting a selected seat is
// a no-op.
func (s *State) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(id)
}

func (s *State) selectLocked(id string) error {
	if slices.Contains(s.seats, id) {
		return nil
	}
	if len(s.seats) >= s.maxSeats {
		return ErrLimitReached
	}
	s.seats = append(s.seats, id)
	return nil
}

// Deselect removes id if present.
func (s *State) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats = slices.DeleteFunc(s.seats, func(v string) bool { return v == id })
}

// Toggle selects or deselects a seat.  Only available seats can be
// toggled.  It reports whether the seat is selected afterwards.
func (s *State) Toggle(seat *seatmap.SeatMeta) (bool, error) {
	if seat == nil {
		return false, ErrUnknownSeat
	}
	if seat.Status != model.StatusAvailable {
		return false, ErrSeatUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.seats, seat.ID); i >= 0 {
		s.seats = slices.Delete(s.seats, i, i+1)
		return false, nil
	}
	if err := s.selectLocked(seat.ID); err != nil {
		return false, err
	}
	return true, nil
}

// Clear empties the selection.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats = nil
}

// Selected returns the selected ids in selection order.
func (s *State) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.seats)
}

func (s *State) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.seats, id)
}

func (s *State) AtLimit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seats) >= s.maxSeats
}

func (s *State) MaxSeats() int {
	return s.maxSeats
}

// Sync binds the selection to nv and drops seats that no longer exist or
// are no longer available.  It reports whether anything was dropped.
func (s *State) Sync(nv *seatmap.NormalizedVenue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venueID != "" && s.venueID != nv.VenueID {
		s.seats = nil
	}
	s.venueID = nv.VenueID
	before := len(s.seats)
	s.seats = slices.DeleteFunc(s.seats, func(id string) bool {
		m, ok := nv.Seat(id)
		return !ok || m.Status != model.StatusAvailable
	})
	return len(s.seats) != before
}

// Total sums the prices of the selected seats.  Seats whose tier has no
// configured price are left out of the sum and returned so the caller can
// decide how to present them.
func (s *State) Total(nv *seatmap.NormalizedVenue) (decimal.Decimal, []string) {
	total := decimal.Zero
	var unpriced []string
	for _, id := range s.Selected() {
		m, ok := nv.Seat(id)
		if !ok {
			unpriced = append(unpriced, id)
			continue
		}
		p, ok := nv.Price(m.PriceTier)
		if !ok {
			unpriced = append(unpriced, id)
			continue
		}
		total = total.Add(p)
	}
	return total, unpriced
}
