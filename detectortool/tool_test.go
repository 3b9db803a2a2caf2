package detectortool

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonwraymond/detectorsearch/catalog"
	"github.com/jonwraymond/detectorsearch/enrich"
	"github.com/jonwraymond/detectorsearch/status"
)

// stubClient resolves states from a fixed table and counts calls.
type stubClient struct {
	mu     sync.Mutex
	calls  int
	states map[string]status.State
	errs   map[string]error
}

func (s *stubClient) FetchState(_ context.Context, id string) (status.State, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err := s.errs[id]; err != nil {
		return status.StateUnknown, err
	}
	return s.states[id], nil
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testTool(t *testing.T, client status.Client) *Tool {
	t.Helper()

	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })

	err = cat.IndexBatch([]catalog.Detector{
		{ID: "d1", Name: "cpu-spikes", Type: catalog.TypeSingleEntity},
		{ID: "d2", Name: "mem-leaks", Type: catalog.TypeMultiEntity},
	})
	if err != nil {
		t.Fatalf("IndexBatch failed: %v", err)
	}

	coord, err := enrich.New(enrich.Options{Client: client})
	if err != nil {
		t.Fatalf("enrich.New failed: %v", err)
	}

	tool, err := New(Config{Catalog: cat, Coordinator: coord})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tool
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing catalog")
	}

	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	defer cat.Close()

	if _, err := New(Config{Catalog: cat}); err == nil {
		t.Error("expected error for missing coordinator")
	}
}

func TestRunWithoutStateFlags(t *testing.T) {
	client := &stubClient{}
	tool := testTool(t, client)

	got, err := tool.Run(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "AnomalyDetectors=[{id=d1,name=cpu-spikes}{id=d2,name=mem-leaks}]TotalAnomalyDetectors=2"
	if got != want {
		t.Errorf("Run = %q, want %q", got, want)
	}
	if client.callCount() != 0 {
		t.Errorf("expected zero state lookups, got %d", client.callCount())
	}
}

func TestRunWithStateFilter(t *testing.T) {
	client := &stubClient{states: map[string]status.State{
		"d1": status.StateRunning,
		"d2": status.StateDisabled,
	}}
	tool := testTool(t, client)

	got, err := tool.Run(context.Background(), map[string]any{"running": true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The total reflects the full search match count, not the state-filtered
	// subset.
	want := "AnomalyDetectors=[{id=d1,name=cpu-spikes}]TotalAnomalyDetectors=2"
	if got != want {
		t.Errorf("Run = %q, want %q", got, want)
	}
	if client.callCount() != 2 {
		t.Errorf("expected one lookup per hit, got %d", client.callCount())
	}
}

func TestRunWithNameFilter(t *testing.T) {
	tool := testTool(t, &stubClient{})

	got, err := tool.Run(context.Background(), map[string]any{"detectorName": "mem-leaks"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "AnomalyDetectors=[{id=d2,name=mem-leaks}]TotalAnomalyDetectors=1"
	if got != want {
		t.Errorf("Run = %q, want %q", got, want)
	}
}

func TestRunLookupFailure(t *testing.T) {
	client := &stubClient{
		states: map[string]status.State{"d1": status.StateFailed},
		errs:   map[string]error{"d2": errors.New("network error")},
	}
	tool := testTool(t, client)

	got, err := tool.Run(context.Background(), map[string]any{"failed": true})
	if !errors.Is(err, enrich.ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
	if got != "" {
		t.Errorf("expected no partial response, got %q", got)
	}
}

func TestRunInvalidParams(t *testing.T) {
	tool := testTool(t, &stubClient{})

	if _, err := tool.Run(context.Background(), map[string]any{"size": "lots"}); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestDefinition(t *testing.T) {
	tool := testTool(t, &stubClient{})

	def := tool.Definition()
	if def.Name != Type {
		t.Errorf("expected name %q, got %q", Type, def.Name)
	}
	if def.Description == "" {
		t.Error("expected non-empty description")
	}

	schema, ok := def.InputSchema.(map[string]any)
	if !ok {
		t.Fatalf("expected map schema, got %T", def.InputSchema)
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("expected properties in schema")
	}
	for _, key := range []string{"detectorName", "running", "disabled", "failed", "size", "startIndex"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %s", key)
		}
	}
}
