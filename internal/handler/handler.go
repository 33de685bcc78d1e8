// Package handler is the HTTP layer: it binds and validates requests,
// calls the services and shapes their results into responses.
package handler
