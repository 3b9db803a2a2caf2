// Package enrich joins a page of detector search hits to their live runtime
// states and filters the page by caller-requested states.
//
// The Coordinator fans out one state lookup per record against a shared
// status.Client, waits until every lookup has settled, joins the results
// back to the page by detector identity, and applies the state Predicate.
// The fan-out is fail-fast: if any single lookup errors, the whole batch
// fails with that cause, outstanding lookups are cancelled, and no partial
// subset is returned. A page with no state filtering requested bypasses the
// status service entirely.
//
// # Basic Usage
//
//	coord, err := enrich.New(enrich.Options{Client: statusClient})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	running := true
//	filtered, err := coord.Enrich(ctx, records, enrich.Predicate{Running: &running})
//
// # Failure Semantics
//
// Enrich returns exactly one outcome per call: the fully filtered page, or
// one of ErrLookupFailed, ErrTimeout, ErrUnknownIdentity, ErrMissingResult.
// Lookup completions that arrive after the outcome is committed are ignored.
// Retrying only the failed lookups is deliberately unsupported; callers that
// need partial progress should issue narrower pages.
//
// # Thread Safety
//
// A Coordinator holds no per-request state and is safe for concurrent use.
package enrich
