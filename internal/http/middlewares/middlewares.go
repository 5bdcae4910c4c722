// Package middlewares contains the HTTP middlewares shared by the router.
package middlewares

import "net/http"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler
