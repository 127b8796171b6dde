// Package api adapts HTTP requests to the auth and task services. Handlers
// decode bodies and query parameters, call a service, and hand every failure
// to the ErrorResponder.
package api
