// Package service contains the application use cases. It orchestrates domain
// objects and the repository interfaces from internal/store to register
// athletes, publish workouts, record results and resolve personal records.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete storage backend. Inputs that arrive as raw values are
// validated through the domain constructors, so a *domain.ValidationError can
// surface from any method. Missing entities and conflicts are reported with
// the sentinel errors declared in errors.go.
package service
