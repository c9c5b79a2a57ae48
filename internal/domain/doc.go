// Package domain contains the core business entities, value objects, and
// domain logic of the application: athletes, workout definitions (WODs),
// recorded results, and the Score algebra used to decide personal records.
//
// Every value object is built through a New* constructor that validates its
// input completely and returns a *ValidationError on failure, so an invalid
// instance can never exist outside this package. Aggregates are created with
// New* (fresh, stamped with the current time) or Reconstitute* (rehydrated
// from storage with an explicit timestamp).
package domain
