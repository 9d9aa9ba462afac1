// Package users is the client service for the user-administration feature.
package users

import (
	"context"
	"net/url"
	"strconv"

	"github.com/kurakampus/kurakampus-cli/internal/api"
	"github.com/kurakampus/kurakampus-cli/internal/gateway"
	"github.com/kurakampus/kurakampus-cli/internal/session"
)

const basePath = "/users"

// Filters narrows a user listing.
type Filters struct {
	Search string
	Role   string
	Status string
	Page   int
	Limit  int
}

func (f Filters) query() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Role != "" {
		params.Set("role", f.Role)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	return params
}

// FormData is the create/update payload for an account.
type FormData struct {
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
	Password  string `json:"password,omitempty"`
}

// Service wraps the user-administration endpoints. All of them require the
// admin role server-side; the client only mirrors that in its route table.
type Service struct {
	gw *gateway.Gateway
}

// NewService creates a user-administration service over the shared gateway.
func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

// List fetches a filtered, paginated page of accounts.
func (s *Service) List(ctx context.Context, filters Filters) ([]session.User, api.PaginationMeta, error) {
	body, err := s.gw.Get(ctx, basePath, filters.query())
	if err != nil {
		return nil, api.PaginationMeta{}, err
	}

	resp, err := api.DecodeList[session.User](body)
	if err != nil {
		return nil, api.PaginationMeta{}, err
	}
	return resp.Data, resp.Meta, nil
}

// Get fetches one account by id.
func (s *Service) Get(ctx context.Context, id string) (*session.User, error) {
	body, err := s.gw.Get(ctx, basePath+"/"+id, nil)
	if err != nil {
		return nil, err
	}

	resp, err := api.Decode[session.User](body)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Create adds an account.
func (s *Service) Create(ctx context.Context, data FormData) (*session.User, error) {
	body, err := s.gw.Post(ctx, basePath, data)
	if err != nil {
		return nil, err
	}

	resp, err := api.Decode[session.User](body)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Update modifies an account.
func (s *Service) Update(ctx context.Context, id string, data FormData) (*session.User, error) {
	body, err := s.gw.Put(ctx, basePath+"/"+id, data)
	if err != nil {
		return nil, err
	}

	resp, err := api.Decode[session.User](body)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.gw.Delete(ctx, basePath+"/"+id)
	return err
}

// Activate marks an account active.
func (s *Service) Activate(ctx context.Context, id string) error {
	_, err := s.gw.Post(ctx, basePath+"/"+id+"/activate", nil)
	return err
}

// Deactivate marks an account inactive.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	_, err := s.gw.Post(ctx, basePath+"/"+id+"/deactivate", nil)
	return err
}
