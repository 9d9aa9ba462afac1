package api

import (
	"encoding/json"
	"fmt"
)

// Decode parses a single-resource envelope.
func Decode[T any](data []byte) (*Response[T], error) {
	var resp Response[T]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// DecodeList parses a collection envelope.
func DecodeList[T any](data []byte) (*ListResponse[T], error) {
	var resp ListResponse[T]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}
