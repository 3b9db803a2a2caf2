package detectortool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/jonwraymond/detectorsearch/catalog"
	"github.com/jonwraymond/detectorsearch/enrich"
)

// ErrInvalidParams reports a parameter that could not be coerced to its
// expected type.
var ErrInvalidParams = errors.New("invalid tool parameters")

// Params are the parsed, typed tool arguments.
type Params struct {
	Filter    catalog.Filter
	Page      catalog.Page
	Predicate enrich.Predicate
}

// parseParams coerces the raw argument map into typed parameters. Absent
// keys keep their defaults; the three state flags and highCardinality are
// tri-state, so absence is recorded as nil rather than false.
func parseParams(args map[string]any) (Params, error) {
	p := Params{
		Page: catalog.Page{
			Size:      20,
			SortField: "name",
			SortOrder: catalog.SortAsc,
		},
	}

	if v, ok := args["detectorName"]; ok {
		p.Filter.Name = cast.ToString(v)
	}
	if v, ok := args["detectorNamePattern"]; ok {
		p.Filter.NamePattern = cast.ToString(v)
	}
	if v, ok := args["indices"]; ok {
		p.Filter.Index = cast.ToString(v)
	}
	if v, ok := args["highCardinality"]; ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return Params{}, fmt.Errorf("%w: highCardinality: %v", ErrInvalidParams, err)
		}
		p.Filter.HighCardinality = &b
	}
	if v, ok := args["lastUpdateTime"]; ok {
		// Non-numeric values are ignored, matching the tolerant handling of
		// this parameter in agent prompts.
		if millis, err := cast.ToInt64E(v); err == nil {
			p.Filter.UpdatedAfter = &millis
		}
	}

	if v, ok := args["sortOrder"]; ok {
		if strings.EqualFold(cast.ToString(v), catalog.SortDesc) {
			p.Page.SortOrder = catalog.SortDesc
		}
	}
	if v, ok := args["sortString"]; ok {
		if field := cast.ToString(v); field != "" {
			p.Page.SortField = field
		}
	}
	if v, ok := args["size"]; ok {
		size, err := cast.ToIntE(v)
		if err != nil {
			return Params{}, fmt.Errorf("%w: size: %v", ErrInvalidParams, err)
		}
		p.Page.Size = size
	}
	if v, ok := args["startIndex"]; ok {
		from, err := cast.ToIntE(v)
		if err != nil {
			return Params{}, fmt.Errorf("%w: startIndex: %v", ErrInvalidParams, err)
		}
		p.Page.From = from
	}

	for _, axis := range []struct {
		key  string
		dest **bool
	}{
		{"running", &p.Predicate.Running},
		{"disabled", &p.Predicate.Disabled},
		{"failed", &p.Predicate.Failed},
	} {
		v, ok := args[axis.key]
		if !ok {
			continue
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %s: %v", ErrInvalidParams, axis.key, err)
		}
		*axis.dest = &b
	}

	return p, nil
}
