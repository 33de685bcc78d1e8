// Package model holds the domain entities and the request and response
// payloads of the HTTP API.
package model

// IDResponse is returned by endpoints that create a resource.
type IDResponse struct {
	ID int64 `json:"id"`
}

// EmptyRequest is used by endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

func (r *IDResponse) CreatedID() int64 {
	return r.ID
}
