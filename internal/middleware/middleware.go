// Package middleware provides HTTP middleware shared across the API surface.
package middleware

// contextKey is a private type for context values set by this package.
type contextKey string
