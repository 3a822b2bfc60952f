// Package client talks to the todo REST API over HTTP/JSON.
//
// TodoClient keeps the bearer token returned by Login and sends it with
// every todo request. Failures are mapped onto sentinel errors that callers
// match with errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden,
// ErrNotFound and ErrValidation. The server's message and field details are
// kept on *APIError.
package client
