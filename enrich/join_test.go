package enrich

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jonwraymond/detectorsearch/status"
)

func TestJoinCorrelatesByIdentity(t *testing.T) {
	records := page("a", "b", "c")
	// Results arrive in an order unrelated to the page.
	results := []lookup{
		{ID: "c", State: status.StateFailed},
		{ID: "a", State: status.StateRunning},
		{ID: "b", State: status.StateDisabled},
	}

	batch, err := join(records, results)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}

	want := map[string]status.State{
		"a": status.StateRunning,
		"b": status.StateDisabled,
		"c": status.StateFailed,
	}
	for id, wantState := range want {
		got, ok := batch.State(id)
		if !ok {
			t.Fatalf("no state for %s", id)
		}
		if got != wantState {
			t.Errorf("state for %s = %v, want %v", id, got, wantState)
		}
	}
}

func TestJoinIsArrivalOrderIndependent(t *testing.T) {
	records := page("a", "b", "c", "d", "e")
	results := []lookup{
		{ID: "a", State: status.StateRunning},
		{ID: "b", State: status.StateDisabled},
		{ID: "c", State: status.StateRunning},
		{ID: "d", State: status.StateFailed},
		{ID: "e", State: status.StateRunning},
	}

	running := true
	pred := Predicate{Running: &running}
	want := []string{"a", "c", "e"}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]lookup, len(results))
		copy(shuffled, results)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		batch, err := join(records, shuffled)
		if err != nil {
			t.Fatalf("join failed: %v", err)
		}

		ids := recordIDs(batch.Filter(pred))
		if len(ids) != len(want) {
			t.Fatalf("trial %d: expected %v, got %v", trial, want, ids)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("trial %d: expected %v, got %v", trial, want, ids)
			}
		}
	}
}

func TestJoinRejectsUnknownIdentity(t *testing.T) {
	records := page("a")
	results := []lookup{
		{ID: "a", State: status.StateRunning},
		{ID: "intruder", State: status.StateRunning},
	}

	if _, err := join(records, results); !errors.Is(err, ErrUnknownIdentity) {
		t.Errorf("expected ErrUnknownIdentity, got %v", err)
	}
}

func TestJoinRejectsDuplicateResult(t *testing.T) {
	records := page("a", "b")
	results := []lookup{
		{ID: "a", State: status.StateRunning},
		{ID: "a", State: status.StateDisabled},
		{ID: "b", State: status.StateRunning},
	}

	if _, err := join(records, results); !errors.Is(err, ErrUnknownIdentity) {
		t.Errorf("expected ErrUnknownIdentity for duplicate, got %v", err)
	}
}

func TestJoinRejectsMissingResult(t *testing.T) {
	records := page("a", "b")
	results := []lookup{
		{ID: "a", State: status.StateRunning},
	}

	if _, err := join(records, results); !errors.Is(err, ErrMissingResult) {
		t.Errorf("expected ErrMissingResult, got %v", err)
	}
}
