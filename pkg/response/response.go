// Package response holds the JSON wire shapes shared by every API endpoint.
package response

// Error is the body returned for every failed JSON request.
type Error struct {
	Error string `json:"error"`
}

// Err wraps a message in the standard error body.
func Err(msg string) Error {
	return Error{Error: msg}
}

// Created is the common body for successful creation endpoints. Endpoints with
// extra fields (po_number, booking_id) extend it inline with gin.H.
type Created struct {
	ID      uint   `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
