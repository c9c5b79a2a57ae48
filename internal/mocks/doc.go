// Package mocks provides centralized mock implementations of the service
// interfaces for handler tests.
//
// The service mocks follow a function-field pattern: each method delegates to
// an optional Fn field and records its calls, falling back to a
// not-implemented error when the field is nil.
//
//	athletes := &mocks.MockAthleteService{
//	    GetAthleteFn: func(ctx context.Context, id domain.AthleteID) (*domain.Athlete, error) {
//	        return nil, errors.New("database unavailable")
//	    },
//	}
//
// PR lookups are mocked with testify/mock in MockPRReader.
package mocks
