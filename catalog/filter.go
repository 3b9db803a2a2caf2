package catalog

import (
	"strings"

	"github.com/blevesearch/bleve/v2/search/query"
)

// Sort directions accepted by Page.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filter enumerates the optional query axes for a detector search. A zero
// Filter matches every detector. Tri-state axes use pointers so that absent
// means "don't care" rather than a default value.
type Filter struct {
	// Name matches the detector name exactly.
	Name string
	// NamePattern matches the detector name with * and ? wildcards.
	NamePattern string
	// Index matches detectors configured over the given source index.
	Index string
	// HighCardinality selects multi-entity (true) or single-entity (false)
	// detectors when set.
	HighCardinality *bool
	// UpdatedAfter keeps detectors whose last update time (epoch millis) is
	// at or after the given value when set.
	UpdatedAfter *int64
}

// buildQuery compiles the present axes into one conjunction query. An empty
// filter compiles to match-all.
func (f Filter) buildQuery() query.Query {
	var conjuncts []query.Query

	if f.Name != "" {
		q := query.NewTermQuery(f.Name)
		q.SetField("name")
		conjuncts = append(conjuncts, q)
	}
	if f.NamePattern != "" {
		q := query.NewWildcardQuery(f.NamePattern)
		q.SetField("name")
		conjuncts = append(conjuncts, q)
	}
	if f.Index != "" {
		q := query.NewTermQuery(f.Index)
		q.SetField("indices")
		conjuncts = append(conjuncts, q)
	}
	if f.HighCardinality != nil {
		detectorType := TypeSingleEntity
		if *f.HighCardinality {
			detectorType = TypeMultiEntity
		}
		q := query.NewTermQuery(detectorType)
		q.SetField("detector_type")
		conjuncts = append(conjuncts, q)
	}
	if f.UpdatedAfter != nil {
		min := float64(*f.UpdatedAfter)
		inclusive := true
		q := query.NewNumericRangeInclusiveQuery(&min, nil, &inclusive, nil)
		q.SetField("last_update_time")
		conjuncts = append(conjuncts, q)
	}

	if len(conjuncts) == 0 {
		return query.NewMatchAllQuery()
	}
	return query.NewConjunctionQuery(conjuncts)
}

// Page controls result pagination and ordering.
type Page struct {
	// Size is the maximum number of records to return. Default 20.
	Size int
	// From is the offset of the first record. Default 0.
	From int
	// SortField is the field to order by. Default "name".
	SortField string
	// SortOrder is SortAsc or SortDesc. Default SortAsc.
	SortOrder string
}

func (p Page) withDefaults() Page {
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.From < 0 {
		p.From = 0
	}
	if p.SortField == "" {
		p.SortField = "name"
	}
	if p.SortOrder == "" {
		p.SortOrder = SortAsc
	}
	return p
}

func (p Page) sortExpr() string {
	if strings.EqualFold(p.SortOrder, SortDesc) {
		return "-" + p.SortField
	}
	return p.SortField
}
