// Package client talks to the gophauth server.
//
// Client is the transport-agnostic contract used by the CLI; GRPCClient is
// its gRPC implementation. GRPCClient keeps the access token returned by
// Login, attaches it to every call as a bearer token in the authorization
// metadata, and maps gRPC status codes to the sentinel errors of this package
// (ErrUnauthorized, ErrSessionExpired, ErrForbidden, ErrNotFound,
// ErrInvalidInput, ErrUnavailable). The server's message is kept in the
// wrapped error text.
//
// A GRPCClient is safe for concurrent use; the CLI pings from a background
// watcher while commands run.
package client
