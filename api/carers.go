// ABOUTME: Carer management endpoints
// ABOUTME: CRUD operations for care workers

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type CarersService struct {
	c *client.Client
}

// CarerInput holds the writable carer fields.
type CarerInput struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
}

// ListCarersOptions filters the carer list.
type ListCarersOptions struct {
	Active *bool
	Search string
}

func (s *CarersService) List(ctx context.Context, opts ListCarersOptions) ([]models.Carer, error) {
	params := url.Values{}
	if opts.Active != nil {
		params.Set("active", fmt.Sprintf("%t", *opts.Active))
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}

	var carers []models.Carer
	if err := s.c.Get(ctx, "/api/carers", params, &carers); err != nil {
		return nil, err
	}
	return carers, nil
}

func (s *CarersService) Get(ctx context.Context, id string) (*models.Carer, error) {
	var carer models.Carer
	if err := s.c.Get(ctx, "/api/carers/"+id, nil, &carer); err != nil {
		return nil, err
	}
	return &carer, nil
}

func (s *CarersService) Create(ctx context.Context, input CarerInput) (*models.Carer, error) {
	var carer models.Carer
	if err := s.c.Post(ctx, "/api/carers", input, &carer); err != nil {
		return nil, err
	}
	return &carer, nil
}

func (s *CarersService) Update(ctx context.Context, id string, input CarerInput) (*models.Carer, error) {
	var carer models.Carer
	if err := s.c.Put(ctx, "/api/carers/"+id, input, &carer); err != nil {
		return nil, err
	}
	return &carer, nil
}

// Delete soft-deletes a carer; the record moves to the recycle bin.
func (s *CarersService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/carers/"+id, nil)
}
