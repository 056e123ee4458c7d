// Package repository defines data access for stored venue documents and the
// sentinel errors shared by its callers.
package repository

import "errors"

// ErrVenueNotFound is returned when no document is stored for a venue id.
// Handlers translate it into an HTTP 404 response.
var ErrVenueNotFound = errors.New("venue not found")
