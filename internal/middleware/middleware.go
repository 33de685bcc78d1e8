// Package middleware holds the global and route-level Echo middleware:
// request ids, request logging, tracing, metrics, authentication and the
// error handler that renders every failure as an errs.HTTPError.
package middleware
