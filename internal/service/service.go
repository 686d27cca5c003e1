// Package service contains the business logic.
//
// It sits behind the handler layer. It receives validated data from the
// handler, builds the requested solid and encodes it.
package service
