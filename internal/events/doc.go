// Package events provides types and interfaces for in-process domain events.
//
// The service layer emits an Event after a state change (for example
// TypeResultRecorded) without knowing who listens. Handlers such as the
// personal-record cache invalidator subscribe through an EventEmitter.
package events
