package dto

import (
	domainerr "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Error                 string `json:"error"`
	Message               string `json:"message,omitempty"`
	Code                  int    `json:"code"`
	ExistingTransactionID string `json:"existingTransactionId,omitempty"`
}

// NewErrorResponse builds the payload for err with the given message
func NewErrorResponse(err error, message string) ErrorResponse {
	resp := ErrorResponse{
		Error:   domainerr.ErrorKind(err),
		Message: message,
		Code:    domainerr.ErrorCode(err),
	}
	if id, ok := domainerr.ExistingTransactionID(err); ok {
		resp.ExistingTransactionID = id
	}
	return resp
}
