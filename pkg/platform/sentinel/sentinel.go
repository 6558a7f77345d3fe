package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Caches, stores and upstream clients
// return these (optionally wrapped) so services can decide how to degrade or
// which domain error to surface.
//
//   - ErrNotFound: key or record does not exist (a cache miss, including expiry)
//   - ErrUnavailable: backend or upstream temporarily unreachable
//   - ErrInvalidState: caller passed a value the store cannot accept
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
