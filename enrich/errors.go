package enrich

import "errors"

// Sentinel errors for consistent error handling.
//
// ErrUnknownIdentity and ErrMissingResult guard the identity-join invariant
// against a misbehaving status client or a dropped lookup. They indicate a
// defect, not an expected runtime outcome, and are never retried.
var (
	ErrLookupFailed    = errors.New("detector state lookup failed")
	ErrTimeout         = errors.New("detector state lookups did not settle in time")
	ErrUnknownIdentity = errors.New("state result for detector not in page")
	ErrMissingResult   = errors.New("no state result for detector in page")
)
