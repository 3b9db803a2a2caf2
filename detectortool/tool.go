package detectortool

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/detectorsearch/catalog"
	"github.com/jonwraymond/detectorsearch/enrich"
)

// Type is the tool's registered name.
const Type = "SearchAnomalyDetectorsTool"

const defaultDescription = "Use this tool to search anomaly detectors."

// Config configures a Tool. Catalog and Coordinator are required; the tool
// never constructs its own collaborators.
type Config struct {
	Catalog     *catalog.Catalog
	Coordinator *enrich.Coordinator

	// Name overrides the registered tool name. Default: Type.
	Name string
	// Description overrides the tool description shown to the agent.
	Description string
	// Logger receives search and enrichment failure logs. If nil, logging
	// is discarded.
	Logger *slog.Logger
}

// Tool searches the detector catalog and filters by live detector state.
type Tool struct {
	catalog     *catalog.Catalog
	coord       *enrich.Coordinator
	logger      *slog.Logger
	name        string
	description string
}

// New creates a Tool with the given collaborators.
func New(cfg Config) (*Tool, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if cfg.Coordinator == nil {
		return nil, errors.New("enrichment coordinator is required")
	}

	name := cfg.Name
	if name == "" {
		name = Type
	}
	description := cfg.Description
	if description == "" {
		description = defaultDescription
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Tool{
		catalog:     cfg.Catalog,
		coord:       cfg.Coordinator,
		logger:      logger,
		name:        name,
		description: description,
	}, nil
}

// Name returns the registered tool name.
func (t *Tool) Name() string {
	return t.name
}

// Run executes one search request. The returned string lists the matched
// detectors and the total match count; every failure path returns a single
// error and no partial result.
func (t *Tool) Run(ctx context.Context, args map[string]any) (string, error) {
	params, err := parseParams(args)
	if err != nil {
		return "", err
	}

	records, total, err := t.catalog.Search(ctx, params.Filter, params.Page)
	if err != nil {
		t.logger.Error("failed to search anomaly detectors", slog.Any("error", err))
		return "", err
	}

	records, err = t.coord.Enrich(ctx, records, params.Predicate)
	if err != nil {
		t.logger.Error("failed to enrich anomaly detectors", slog.Any("error", err))
		return "", err
	}

	return formatResponse(records, total), nil
}

// Handle adapts Run to the registry handler signature.
func (t *Tool) Handle(ctx context.Context, args map[string]any) (any, error) {
	return t.Run(ctx, args)
}

// Definition describes the tool to the MCP host.
func (t *Tool) Definition() mcp.Tool {
	return mcp.Tool{
		Name:        t.name,
		Description: t.description,
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"detectorName": map[string]any{
					"type":        "string",
					"description": "Exact detector name to match",
				},
				"detectorNamePattern": map[string]any{
					"type":        "string",
					"description": "Detector name pattern with * and ? wildcards",
				},
				"indices": map[string]any{
					"type":        "string",
					"description": "Source index the detector is configured over",
				},
				"highCardinality": map[string]any{
					"type":        "boolean",
					"description": "true for multi-entity detectors, false for single-entity",
				},
				"lastUpdateTime": map[string]any{
					"type":        "integer",
					"description": "Keep detectors updated at or after this epoch millisecond time",
				},
				"sortOrder": map[string]any{
					"type":        "string",
					"description": "Sort direction, asc (default) or desc",
				},
				"sortString": map[string]any{
					"type":        "string",
					"description": "Field to sort by, default name",
				},
				"size": map[string]any{
					"type":        "integer",
					"description": "Maximum number of detectors to return, default 20",
				},
				"startIndex": map[string]any{
					"type":        "integer",
					"description": "Offset of the first detector, default 0",
				},
				"running": map[string]any{
					"type":        "boolean",
					"description": "Filter by running state",
				},
				"disabled": map[string]any{
					"type":        "boolean",
					"description": "Filter by disabled state",
				},
				"failed": map[string]any{
					"type":        "boolean",
					"description": "Filter by failed state",
				},
			},
		},
	}
}
