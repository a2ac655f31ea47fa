// ABOUTME: Recycle bin endpoints
// ABOUTME: Restore or permanently purge soft-deleted records

package api

import (
	"context"
	"net/url"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type RecycleBinService struct {
	c *client.Client
}

// ListRecycleBinOptions filters the recycle bin by resource type.
type ListRecycleBinOptions struct {
	ResourceType string
}

func (s *RecycleBinService) List(ctx context.Context, opts ListRecycleBinOptions) ([]models.RecycleBinItem, error) {
	params := url.Values{}
	if opts.ResourceType != "" {
		params.Set("resource_type", opts.ResourceType)
	}

	var items []models.RecycleBinItem
	if err := s.c.Get(ctx, "/api/recycle-bin", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Restore moves a soft-deleted record back to its home resource.
func (s *RecycleBinService) Restore(ctx context.Context, id string) error {
	return s.c.Post(ctx, "/api/recycle-bin/"+id+"/restore", nil, nil)
}

// Purge permanently removes a soft-deleted record. There is no undo.
func (s *RecycleBinService) Purge(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/recycle-bin/"+id, nil)
}
