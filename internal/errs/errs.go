// Package errs defines the error shapes returned to API clients.
//
// Every error response has the same JSON body (see HTTPError) so clients
// can handle validation failures, missing routes and server faults the
// same way.
package errs
