// Package api serves the recipe costing store over HTTP.
//
// Resources live under /api and speak JSON. Money and quantities are
// encoded as decimal strings. Every /api route runs through the same
// middleware chain:
//
//	metrics -> request ID -> panic recovery -> rate limit -> logging
//
// Errors are answered with an ErrorResponse carrying a stable code, the
// request ID and whether the call may be retried. /health, /ready and
// /metrics bypass the chain.
package api
