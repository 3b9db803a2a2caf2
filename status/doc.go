// Package status resolves the live runtime state of a detector.
//
// A Client answers "what is detector X doing right now" with one of a fixed
// set of states (Running, Disabled, Failed, Unknown). Clients must be safe
// for concurrent calls on distinct identities and must honor context
// cancellation; the enrich package fans many lookups out against a single
// shared Client.
//
// HTTPClient is the production implementation against the detector profile
// endpoint of a status service.
package status
