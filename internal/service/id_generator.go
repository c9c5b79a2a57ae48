package service

import "github.com/google/uuid"

// IDGenerator produces identifiers for new athletes, workouts and results.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new lowercase UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
