package enrich

import (
	"fmt"

	"github.com/jonwraymond/detectorsearch/catalog"
	"github.com/jonwraymond/detectorsearch/status"
)

// lookup is one settled state lookup: the detector identity it was issued
// for and the state it resolved to.
type lookup struct {
	ID    string
	State status.State
}

// Batch associates every record of one search page with its resolved state.
// The identity set of a Batch is exactly the identity set of the input page;
// join enforces this before a Batch is constructed.
type Batch struct {
	records []catalog.Record
	states  map[string]status.State
}

// join correlates unordered lookup results back to the ordered page by
// identity. Correlation never relies on arrival order; asynchronous
// completions may settle in any order.
//
// A result for an identity outside the page, or a second result for the
// same identity, fails with ErrUnknownIdentity. A page identity with no
// result fails with ErrMissingResult. Both are fatal to the request.
func join(records []catalog.Record, results []lookup) (Batch, error) {
	inPage := make(map[string]bool, len(records))
	for _, rec := range records {
		inPage[rec.ID] = true
	}

	states := make(map[string]status.State, len(records))
	for _, res := range results {
		if !inPage[res.ID] {
			return Batch{}, fmt.Errorf("%w: %s", ErrUnknownIdentity, res.ID)
		}
		if _, dup := states[res.ID]; dup {
			return Batch{}, fmt.Errorf("%w: duplicate result for %s", ErrUnknownIdentity, res.ID)
		}
		states[res.ID] = res.State
	}

	for _, rec := range records {
		if _, ok := states[rec.ID]; !ok {
			return Batch{}, fmt.Errorf("%w: %s", ErrMissingResult, rec.ID)
		}
	}

	return Batch{records: records, states: states}, nil
}

// State returns the resolved state for one record identity.
func (b Batch) State(id string) (status.State, bool) {
	s, ok := b.states[id]
	return s, ok
}

// Filter returns the records whose resolved state satisfies the predicate,
// preserving the page's original relative order.
func (b Batch) Filter(pred Predicate) []catalog.Record {
	filtered := make([]catalog.Record, 0, len(b.records))
	for _, rec := range b.records {
		if pred.Matches(b.states[rec.ID]) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
