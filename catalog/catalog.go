package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Error values for catalog operations.
var (
	ErrSearchUnavailable = errors.New("detector search unavailable")
	ErrInvalidDetector   = errors.New("invalid detector")
)

// Detector type values stored in the index.
const (
	TypeSingleEntity = "SINGLE_ENTITY"
	TypeMultiEntity  = "MULTI_ENTITY"
)

// Detector is one indexed detector configuration document.
type Detector struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Indices        []string `json:"indices,omitempty" yaml:"indices,omitempty"`
	Type           string   `json:"detector_type,omitempty" yaml:"detector_type,omitempty"`
	LastUpdateTime int64    `json:"last_update_time,omitempty" yaml:"last_update_time,omitempty"`
}

// Validate checks that the detector can be indexed.
func (d Detector) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDetector)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDetector)
	}
	return nil
}

// document renders the detector as the flat field map the index mapping is
// written against.
func (d Detector) document() map[string]any {
	return map[string]any{
		"name":             d.Name,
		"description":      d.Description,
		"indices":          d.Indices,
		"detector_type":    d.Type,
		"last_update_time": d.LastUpdateTime,
	}
}

// Record is one search hit: an opaque identity plus the named scalar fields
// returned by the index. Records are immutable once returned from Search.
type Record struct {
	ID     string
	Fields map[string]string
}

// Name returns the detector display name, if the hit carried one.
func (r Record) Name() string {
	return r.Fields["name"]
}

// Catalog is a bleve-backed detector index.
type Catalog struct {
	index bleve.Index
}

// New creates an empty in-memory catalog.
func New() (*Catalog, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog index: %w", err)
	}
	return &Catalog{index: idx}, nil
}

func buildMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Names and indices are matched exactly or by wildcard, never tokenized.
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("name", keywordField)
	docMapping.AddFieldMappingsAt("indices", keywordField)
	docMapping.AddFieldMappingsAt("detector_type", keywordField)

	numericField := bleve.NewNumericFieldMapping()
	docMapping.AddFieldMappingsAt("last_update_time", numericField)

	textField := bleve.NewTextFieldMapping()
	docMapping.AddFieldMappingsAt("description", textField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Index adds or replaces one detector document.
func (c *Catalog) Index(d Detector) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := c.index.Index(d.ID, d.document()); err != nil {
		return fmt.Errorf("failed to index detector %s: %w", d.ID, err)
	}
	return nil
}

// IndexBatch adds or replaces multiple detector documents in one batch.
func (c *Catalog) IndexBatch(detectors []Detector) error {
	batch := c.index.NewBatch()
	for _, d := range detectors {
		if err := d.Validate(); err != nil {
			return err
		}
		if err := batch.Index(d.ID, d.document()); err != nil {
			return fmt.Errorf("failed to batch detector %s: %w", d.ID, err)
		}
	}
	if err := c.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to apply detector batch: %w", err)
	}
	return nil
}

// Delete removes a detector document by ID.
func (c *Catalog) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDetector)
	}
	return c.index.Delete(id)
}

// Count returns the number of indexed detectors.
func (c *Catalog) Count() (uint64, error) {
	return c.index.DocCount()
}

// Search executes one filtered, paginated query and returns the matching
// records plus the total match count across all pages. Failures surface as
// ErrSearchUnavailable; callers propagate them unmodified.
func (c *Catalog) Search(ctx context.Context, filter Filter, page Page) ([]Record, uint64, error) {
	page = page.withDefaults()

	req := bleve.NewSearchRequestOptions(filter.buildQuery(), page.Size, page.From, false)
	req.Fields = []string{"name", "detector_type"}
	req.SortBy([]string{page.sortExpr()})

	res, err := c.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	records := make([]Record, 0, len(res.Hits))
	for _, hit := range res.Hits {
		fields := make(map[string]string, len(hit.Fields))
		for name, value := range hit.Fields {
			if s, ok := value.(string); ok {
				fields[name] = s
			}
		}
		records = append(records, Record{ID: hit.ID, Fields: fields})
	}

	return records, res.Total, nil
}

// Close releases the underlying index.
func (c *Catalog) Close() error {
	return c.index.Close()
}
