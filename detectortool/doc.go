// Package detectortool exposes detector catalog search as an agent tool.
//
// The tool accepts the flat string-keyed parameters an agent host passes to
// tools (detectorName, detectorNamePattern, indices, highCardinality,
// lastUpdateTime, sortOrder, sortString, size, startIndex, running,
// disabled, failed), runs the catalog search, enriches the hits with live
// detector states when any of the three state flags is present, and formats
// the answer as a single response string.
//
// The tool's collaborators are injected at construction; there is no
// process-wide factory.
package detectortool
