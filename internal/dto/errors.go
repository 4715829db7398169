package dto

// ErrorResponse is the common error body for all API errors.
// FieldErrors is only present for request validation failures.
type ErrorResponse struct {
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}
