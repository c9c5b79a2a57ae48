// Package store defines the repository contracts for athletes, workouts and
// results. The interfaces keep the service layer independent of the storage
// backend; internal/platform/memory and internal/platform/postgres provide the
// implementations.
//
// Contract shared by every store:
//   - lookups return (nil, nil) when the entity does not exist
//   - the error return is reserved for infrastructure failures and for
//     uniqueness or reference violations (ErrDuplicate, ErrInvalidReference)
//   - implementations are safe for concurrent use
package store
