// Package memory provides in-process implementations of the store
// interfaces. Data lives in maps guarded by a sync.RWMutex and is lost when
// the process exits; it backs local development and the service tests.
//
// Stores keep their own copies of the aggregates, so mutating a value after
// Save, or mutating one returned by a lookup, never changes stored state.
package memory
