// Package domain contains the core business entities of the task API: users,
// tasks and the authenticated identity, together with the classified error
// type that the HTTP layer maps to status codes. It is independent of any
// storage or delivery mechanism.
package domain
