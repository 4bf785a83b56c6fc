package shopify

import (
	"fmt"
	"strings"
)

// UserError is one structured validation error returned by the service.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// RejectedError means the service answered but refused the request, or
// answered success without a usable redirect URL.
type RejectedError struct {
	Errors []UserError
}

func (e *RejectedError) Error() string {
	if len(e.Errors) == 0 {
		return "checkout rejected"
	}

	messages := make([]string, 0, len(e.Errors))
	for _, userErr := range e.Errors {
		messages = append(messages, userErr.Message)
	}

	return "checkout rejected: " + strings.Join(messages, ", ")
}

// TransportError means the request never produced a usable application
// response: network failure, non-success status or a malformed body.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("storefront request failed with status %d: %v", e.Status, e.Err)
	}

	return fmt.Sprintf("storefront request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
