package gate

import "errors"

// Sentinel errors returned by Gate.Authorize.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrLocked          = errors.New("resource is locked for mutation")
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)
