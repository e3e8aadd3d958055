package services

import "errors"

// Error taxonomy surfaced to the API layer. Service methods wrap these with
// fmt.Errorf("...: %w", Err*) so handlers can map them with errors.Is.
var (
	// ErrNotFound marks an unknown game, group, user, turf or booking.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks duplicate membership, a full game, an existing
	// friendship/request, or an already-taken booking slot.
	ErrConflict = errors.New("conflict")
	// ErrForbidden marks a privileged action attempted by the wrong user.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")
)
