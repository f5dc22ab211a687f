// Package middleware provides the HTTP middleware applied in front of every
// generated route: request ids, structured logging, panic recovery, CORS,
// caller identity, and rate limiting.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior
type Middleware func(http.Handler) http.Handler

// Chain composes middleware in registration order: the first Use'd
// middleware is the outermost wrapper.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a chain seeded with the given middleware
func NewChain(m ...Middleware) *Chain {
	return &Chain{middlewares: m}
}

// Use appends middleware to the chain
func (c *Chain) Use(m ...Middleware) {
	c.middlewares = append(c.middlewares, m...)
}

// Then wraps the final handler with the full chain
func (c *Chain) Then(h http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}
