package lifecycle

import "errors"

// Error kinds surfaced by the engine. Callers classify with errors.Is;
// the HTTP layer maps them to status codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage unavailable")
)
