// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the application services in internal/service, translating HTTP
// concerns to use cases and service errors back to status codes.
package api
