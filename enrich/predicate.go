package enrich

import "github.com/jonwraymond/detectorsearch/status"

// Predicate holds the caller's optional state constraints. Each axis is
// tri-state: nil means the caller does not care about that state, true
// requires it, false excludes it.
//
// A true flag retains only records whose state equals that flag's state, so
// two distinct true flags yield the empty set; a record cannot equal two
// states at once. This is intentional: there is no OR semantic across axes.
type Predicate struct {
	Running  *bool
	Disabled *bool
	Failed   *bool
}

// Empty reports whether no axis was set. An empty predicate means state
// filtering was not requested and no lookups should be issued.
func (p Predicate) Empty() bool {
	return p.Running == nil && p.Disabled == nil && p.Failed == nil
}

// Matches reports whether a resolved state satisfies every set axis.
// StateUnknown never satisfies a true flag.
func (p Predicate) Matches(s status.State) bool {
	axes := []struct {
		flag  *bool
		state status.State
	}{
		{p.Running, status.StateRunning},
		{p.Disabled, status.StateDisabled},
		{p.Failed, status.StateFailed},
	}

	for _, axis := range axes {
		if axis.flag == nil {
			continue
		}
		if *axis.flag && s != axis.state {
			return false
		}
		if !*axis.flag && s == axis.state {
			return false
		}
	}
	return true
}
