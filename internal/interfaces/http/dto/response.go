// Package dto holds the HTTP response envelope shared by every endpoint.
package dto

import (
	"strconv"

	"github.com/crm/backend/internal/domain/shared"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every API response
type Envelope struct {
	Data any          `json:"data"`
	Meta ResponseMeta `json:"meta"`
}

// ResponseMeta describes the outcome of a request
type ResponseMeta struct {
	Message    string             `json:"message"`
	Status     string             `json:"status"`
	Code       string             `json:"code"`
	Pagination *Pagination        `json:"pagination"`
	ErrorCode  string             `json:"error_code,omitempty"`
	RequestID  string             `json:"request_id,omitempty"`
	Details    []ValidationDetail `json:"details,omitempty"`
}

// Pagination is the page block attached to list and search responses
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ValidationDetail reports one failed field constraint
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data any, message string, httpStatus int) Envelope {
	return Envelope{
		Data: data,
		Meta: ResponseMeta{
			Message: message,
			Status:  StatusSuccess,
			Code:    strconv.Itoa(httpStatus),
		},
	}
}

// NewPaginatedResponse wraps one page of items with its pagination block
func NewPaginatedResponse[T any](page *shared.Paginated[T], message string, httpStatus int) Envelope {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	resp := NewSuccessResponse(items, message, httpStatus)
	resp.Meta.Pagination = &Pagination{
		Page:        page.Page,
		Limit:       page.Limit,
		Total:       page.Total,
		TotalPages:  page.TotalPages,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	}
	return resp
}

// NewErrorResponse builds an error envelope with null data
func NewErrorResponse(message string, httpStatus int, errorCode string) Envelope {
	return Envelope{
		Meta: ResponseMeta{
			Message:   message,
			Status:    StatusError,
			Code:      strconv.Itoa(httpStatus),
			ErrorCode: errorCode,
		},
	}
}

// NewValidationErrorResponse builds a 400 envelope listing the failed fields
func NewValidationErrorResponse(details []ValidationDetail) Envelope {
	resp := NewErrorResponse("Validation failed", 400, ErrCodeValidation)
	resp.Meta.Details = details
	return resp
}

// WithRequestID returns a copy of e tagged with the request id
func (e Envelope) WithRequestID(requestID string) Envelope {
	e.Meta.RequestID = requestID
	return e
}
