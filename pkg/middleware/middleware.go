// Package middleware provides an ordered HTTP middleware stack plus
// common request middleware (logging, CORS).
package middleware

import "net/http"

// Stack holds an ordered list of HTTP middleware.
// The zero value is an empty stack ready for use.
type Stack struct {
	stack []func(http.Handler) http.Handler
}

// Use appends middleware to the stack.
func (s *Stack) Use(mw func(http.Handler) http.Handler) {
	s.stack = append(s.stack, mw)
}

// Apply wraps handler with the stack's middleware in registration order:
// the first registered middleware is outermost.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
