// Package api defines the response envelopes shared by every backend
// endpoint outside of authentication.
package api

import "github.com/kurakampus/kurakampus-cli/internal/apierr"

// Response is the standard envelope for single resources.
type Response[T any] struct {
	Success   bool   `json:"success"`
	Data      T      `json:"data"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// PaginationMeta describes the position of a page within a collection.
type PaginationMeta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// ListResponse is the standard envelope for collections.
type ListResponse[T any] struct {
	Success bool           `json:"success"`
	Data    []T            `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

// ErrorEnvelope is the error body returned by the backend.
type ErrorEnvelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Err        string              `json:"error,omitempty"`
	StatusCode int                 `json:"statusCode"`
	Timestamp  string              `json:"timestamp,omitempty"`
	Path       string              `json:"path,omitempty"`
	Errors     []apierr.FieldError `json:"errors,omitempty"`
}
