// Package catalog stores and searches anomaly detector configurations.
//
// Detectors are indexed into an in-memory bleve index with keyword-analyzed
// fields, so name and index filters are exact (or wildcard) matches rather
// than relevance-ranked text search. A Filter enumerates the optional query
// axes and compiles to a bleve conjunction query; a Page controls size,
// offset, and sort.
//
// # Basic Usage
//
//	cat, err := catalog.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cat.Close()
//
//	_ = cat.Index(catalog.Detector{ID: "d1", Name: "cpu-spikes", Indices: []string{"metrics-*"}})
//
//	records, total, err := cat.Search(ctx, catalog.Filter{NamePattern: "cpu-*"}, catalog.Page{Size: 10})
//
// # Thread Safety
//
// All Catalog methods are safe for concurrent use.
package catalog
