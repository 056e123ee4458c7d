package seatmap

import "errors"

// Normalization failures wrap one of these sentinels.  All of them are
// fatal: the same input always fails the same way.
var (
	// ErrStructure means the venue, a section or a row lacks a required
	// field or sequence.
	ErrStructure = errors.New("invalid venue structure")
	// ErrInvalidSeat means a seat lacks an id, has non-numeric coordinates
	// or carries an unknown status.
	ErrInvalidSeat = errors.New("invalid seat")
	// ErrDuplicateSeat means two seats share an id.
	ErrDuplicateSeat = errors.New("duplicate seat id")
)

// IsValidationError reports whether err came from venue validation, as
// opposed to an I/O failure upstream of the normalizer.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrStructure) || errors.Is(err, ErrInvalidSeat) || errors.Is(err, ErrDuplicateSeat)
}
