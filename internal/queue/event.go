// Package queue defines message payloads exchanged over the message broker
// and the consumer that reacts to them.
package queue

// VenueUpdatedQueue is the durable queue carrying VenueUpdatedEvent messages.
const VenueUpdatedQueue = "venue.updated"

// VenueUpdatedEvent is published whenever a venue document is stored or
// removed.  Consumers drop any normalized copy they hold; the next read
// rebuilds the venue from the stored document.  SeatCount is zero when the
// venue was deleted.
type VenueUpdatedEvent struct {
	VenueID   string `json:"venue_id"`
	Name      string `json:"name"`
	SeatCount int    `json:"seat_count"`
	Deleted   bool   `json:"deleted,omitempty"`
	UpdatedAt string `json:"updated_at"`
}
