// Package orgs is the client service for the campus-organization directory
// resource: CRUD, bulk operations, statistics, and CSV import/export.
package orgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kurakampus/kurakampus-cli/internal/api"
	"github.com/kurakampus/kurakampus-cli/internal/gateway"
	"github.com/kurakampus/kurakampus-cli/internal/validate"
)

const basePath = "/organizations"

// Service wraps the organization endpoints.
type Service struct {
	gw *gateway.Gateway
}

// NewService creates an organization service over the shared gateway.
func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

// List fetches a filtered, paginated page of organizations.
func (s *Service) List(ctx context.Context, filters Filters) ([]Organization, api.PaginationMeta, error) {
	body, err := s.gw.Get(ctx, basePath, filters.Query())
	if err != nil {
		return nil, api.PaginationMeta{}, err
	}

	resp, err := api.DecodeList[Organization](body)
	if err != nil {
		return nil, api.PaginationMeta{}, err
	}
	return resp.Data, resp.Meta, nil
}

// Get fetches one organization by id.
func (s *Service) Get(ctx context.Context, id string) (*Organization, error) {
	body, err := s.gw.Get(ctx, basePath+"/"+id, nil)
	if err != nil {
		return nil, err
	}

	resp, err := api.Decode[Organization](body)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Create validates the input locally, then creates the organization.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Organization, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	body, err := s.gw.Post(ctx, basePath, input)
	if err != nil {
		return nil, err
	}

	resp, err := api.Decode[Organization](body)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Organization, error) {
	body, err := s.gw.Patch(ctx, basePath+"/"+id, input)
	if err != nil {
		return nil, err
	}

	resp, err := api.Decode[Organization](body)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Delete removes one organization.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.gw.Delete(ctx, basePath+"/"+id)
	return err
}

// BulkDelete removes several organizations in one request.
func (s *Service) BulkDelete(ctx context.Context, ids []string) (*BulkDeleteResult, error) {
	body, err := s.gw.Post(ctx, basePath+"/bulk-delete", map[string][]string{"ids": ids})
	if err != nil {
		return nil, err
	}

	var result BulkDeleteResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// Stats fetches directory statistics.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	body, err := s.gw.Get(ctx, basePath+"/stats", nil)
	if err != nil {
		return nil, err
	}

	resp, err := api.Decode[Stats](body)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// FilterOptions fetches the distinct values usable as listing filters.
func (s *Service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	body, err := s.gw.Get(ctx, basePath+"/filters/options", nil)
	if err != nil {
		return nil, err
	}

	resp, err := api.Decode[FilterOptions](body)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ImportCSV uploads a CSV file for server-side import.
func (s *Service) ImportCSV(ctx context.Context, filename string, content io.Reader) (*ImportResult, error) {
	body, err := s.gw.Upload(ctx, basePath+"/import-csv", "file", filename, content, nil)
	if err != nil {
		return nil, err
	}

	var result ImportResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// ExportCSV downloads the directory as raw CSV, honoring the same filters
// as List.
func (s *Service) ExportCSV(ctx context.Context, filters Filters) ([]byte, error) {
	return s.gw.Get(ctx, basePath+"/export-csv", filters.Query())
}

// CSVTemplate downloads the import template.
func (s *Service) CSVTemplate(ctx context.Context) ([]byte, error) {
	return s.gw.Get(ctx, basePath+"/csv-template", nil)
}
