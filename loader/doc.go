// Package loader provisions a detector catalog from YAML definition files.
//
// A definition file holds a list of detectors under a top-level "detectors"
// key; detectors without an id are assigned one at load time. The Loader
// performs one-shot loads; the Watcher keeps a catalog in sync with a
// definitions directory, re-indexing files as they change and removing
// detectors whose files are deleted.
package loader
