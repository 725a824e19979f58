package errors

import (
	"fmt"
	"net/http"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "InvalidRequest", "ItemNotFound")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (field name, validation info, etc.)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "InvalidRequest", "ValidationError":
		return http.StatusBadRequest
	case "Unauthorized":
		return http.StatusUnauthorized
	case "ItemNotFound", "StoreEmpty", "CartItemNotFound":
		return http.StatusNotFound
	case "CartConflict", "RequestInProgress":
		return http.StatusConflict
	case "CacheError", "SerializationError", "DatabaseError", "InternalError":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError("InvalidRequest", message, details)
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError("ValidationError", message, fmt.Sprintf("Field: %s", field))
}

func NewUnauthorized(message, details string) *StandardError {
	return NewStandardError("Unauthorized", message, details)
}

func NewItemNotFound(itemID int64) *StandardError {
	return NewStandardError("ItemNotFound", fmt.Sprintf("There is no item with the id: %d", itemID), fmt.Sprintf("Item ID: %d", itemID))
}

func NewStoreEmpty() *StandardError {
	return NewStandardError("StoreEmpty", "There are no items in inventory right now. Please come back later.", "")
}

func NewCartItemNotFound(itemID int64) *StandardError {
	return NewStandardError("CartItemNotFound", "The item is not in your cart.", fmt.Sprintf("Item ID: %d", itemID))
}

func NewCartConflict(message string, err error) *StandardError {
	return NewStandardError("CartConflict", message, err.Error())
}

func NewRequestInProgress(requestID string) *StandardError {
	return NewStandardError("RequestInProgress", "A request with this ID is already being processed.", fmt.Sprintf("X-Request-ID: %s", requestID))
}

func NewCacheError(message string, err error) *StandardError {
	return NewStandardError("CacheError", message, err.Error())
}

func NewSerializationError(message string, err error) *StandardError {
	return NewStandardError("SerializationError", message, err.Error())
}

func NewDatabaseError(operation string, err error) *StandardError {
	return NewStandardError("DatabaseError", fmt.Sprintf("database operation failed: %s", operation), err.Error())
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}
