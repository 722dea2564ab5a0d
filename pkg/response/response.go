// Package response provides unified API response structures.
// This package defines standard response formats for HTTP APIs,
// ensuring consistent response structures across all endpoints.
package response

import (
	"net/http"

	"github.com/edukit/campus/pkg/errors"
)

// Response is the unified API response structure.
// All API responses should use this format for consistency.
type Response struct {
	// Code is the business error code (0 = success)
	Code int `json:"code"`

	// Message is a human-readable message
	Message string `json:"message"`

	// Data contains the response payload (nil for errors)
	Data any `json:"data,omitempty"`

	// Errors maps field names to their validation messages. Only present on
	// validation and authentication failures.
	Errors map[string][]string `json:"errors,omitempty"`

	// RequestID is the unique request identifier for tracing
	RequestID string `json:"request_id,omitempty"`

	// httpCode is the HTTP status to write, not serialized.
	httpCode int
}

// PageData represents paginated data.
type PageData struct {
	// List contains the data items
	List any `json:"list"`

	// Total is the total number of items
	Total int64 `json:"total"`

	// Page is the current page number (1-based)
	Page int `json:"page"`

	// PageSize is the number of items per page
	PageSize int `json:"page_size"`

	// TotalPages is the total number of pages
	TotalPages int `json:"total_pages"`
}

// Success creates a successful response with data.
func Success(data any) *Response {
	return &Response{
		Code:     0,
		Message:  "success",
		Data:     data,
		httpCode: http.StatusOK,
	}
}

// SuccessWithMessage creates a successful response with custom message.
func SuccessWithMessage(message string, data any) *Response {
	return &Response{
		Code:     0,
		Message:  message,
		Data:     data,
		httpCode: http.StatusOK,
	}
}

// Err creates an error response from an Errno.
func Err(e *errors.Errno) *Response {
	if e == nil {
		return Success(nil)
	}
	return &Response{
		Code:     e.Code,
		Message:  e.Message,
		httpCode: e.HTTPStatus(),
	}
}

// Invalid creates a 422 response carrying a field -> messages map. Used for
// both request validation failures and credential failures, which share the
// same wire shape.
func Invalid(message string, fieldErrors map[string][]string) *Response {
	return &Response{
		Code:     errors.ErrUnprocessable.Code,
		Message:  message,
		Errors:   fieldErrors,
		httpCode: http.StatusUnprocessableEntity,
	}
}

// Page creates a paginated response.
func Page(list any, total int64, page, pageSize int) *Response {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return Success(&PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// WithRequestID adds request ID to the response.
func (r *Response) WithRequestID(requestID string) *Response {
	r.RequestID = requestID
	return r
}

// IsSuccess returns true if the response indicates success.
func (r *Response) IsSuccess() bool {
	return r.Code == 0
}

// HTTPStatus returns the HTTP status code for this response.
func (r *Response) HTTPStatus() int {
	if r.httpCode != 0 {
		return r.httpCode
	}
	if r.Code == 0 {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
