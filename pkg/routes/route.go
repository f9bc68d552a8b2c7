package routes

import "net/http"

// Route binds an HTTP method and a pattern, relative to the owning
// group's prefix, to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}
