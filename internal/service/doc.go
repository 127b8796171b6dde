// Package service contains the application-specific use cases: registering
// and authenticating users, and managing each user's tasks. Services depend on
// the store interfaces and the auth primitives, never on a concrete backend.
//
// Every error a service returns is either a *domain.Error, whose kind and
// message the HTTP layer maps to a response, or a wrapped unexpected failure
// reported as an internal error.
package service
